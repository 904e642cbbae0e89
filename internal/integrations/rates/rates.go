// Package rates fetches the central-bank benchmark policy rate used as the
// anchor for suggested growth rates in the wealth simulator.
package rates

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/finsight/finsight-service/internal/config"
)

// Equity premium added on top of the policy rate when suggesting a growth
// rate for the simulator.
const equityRiskPremium = 5.0

// Client handles integration with the policy-rate publication service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for the policy rate series
func (c *Client) buildSOAPRequest() string {
	fromDate := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	toDate := time.Now().Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<PolicyRate xmlns="http://rates.finsight.dev/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</PolicyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

// sendRequest sends the SOAP request to the rates service
func (c *Client) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer([]byte(soapRequest)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://rates.finsight.dev/PolicyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	// Log the raw XML response for debugging
	c.log.Debugf("Rates XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse parses the XML response to extract the latest policy rate
func (c *Client) parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %v", err)
	}

	rateElements := doc.FindElements("//diffgram/PolicyRate/PR")
	if len(rateElements) == 0 {
		return 0, fmt.Errorf("no policy rate data found in XML")
	}

	// Series is newest first
	latest := rateElements[0]
	rateElement := latest.FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	var rate float64
	if _, err := fmt.Sscanf(rateElement.Text(), "%f", &rate); err != nil {
		return 0, fmt.Errorf("failed to parse rate: %v", err)
	}

	return rate, nil
}

// GetBenchmarkRate retrieves the current benchmark policy rate in percent
func (c *Client) GetBenchmarkRate() (float64, error) {
	soapRequest := c.buildSOAPRequest()
	body, err := c.sendRequest(soapRequest)
	if err != nil {
		return 0, err
	}

	rate, err := c.parseXMLResponse(body)
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved benchmark policy rate: %.2f%%", rate)
	return rate, nil
}

// SuggestedGrowthRate converts a benchmark rate in percent into the annual
// growth fraction suggested to the simulator, equity premium included.
func SuggestedGrowthRate(benchmarkPercent float64) float64 {
	return (benchmarkPercent + equityRiskPremium) / 100
}
