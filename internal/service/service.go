package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finsight/finsight-service/internal/anomaly"
	"github.com/finsight/finsight-service/internal/config"
	"github.com/finsight/finsight-service/internal/finance"
	"github.com/finsight/finsight-service/internal/models"
	"github.com/finsight/finsight-service/internal/repository"
	"github.com/finsight/finsight-service/internal/synth"
	"github.com/finsight/finsight-service/internal/utils"
	"github.com/finsight/finsight-service/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo   repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer *email.Sender
}

// SimulationResult pairs the current summary with its projection.
type SimulationResult struct {
	Summary    *models.Summary    `json:"summary"`
	Projection *models.Projection `json:"projection"`
}

// NewService initializes a new service. The mailer may be nil when SMTP is
// not configured.
func NewService(repo repository.Repository, log *logrus.Logger, cfg *config.Config, mailer *email.Sender) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CurrentUser returns the authenticated user's profile
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindUserByID(userID)
}

// Consent generates a fresh synthetic bundle for the authenticated user,
// encrypts it, and stores it as a new version.
func (s *Service) Consent(ctx context.Context) (*models.FinancialRecord, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.storeFreshBundle(userID)
}

func (s *Service) storeFreshBundle(userID int64) (*models.FinancialRecord, error) {
	gen := synth.NewGenerator(time.Now().UnixNano() ^ userID)
	data := gen.Generate()

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}

	ciphertext, err := utils.Encrypt(payload, s.config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt bundle: %w", err)
	}

	record := &models.FinancialRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		Ciphertext: ciphertext,
		HMAC:       utils.GenerateHMAC([]byte(ciphertext), s.config.HMACSecret),
	}

	if err := s.repo.SaveFinancialRecord(record); err != nil {
		return nil, err
	}

	s.log.Infof("Financial bundle stored for user %d (record %s)", userID, record.ID)
	return record, nil
}

// FinancialData returns the authenticated user's latest bundle, decrypted.
func (s *Service) FinancialData(ctx context.Context) (*models.FinancialData, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadBundle(userID)
}

func (s *Service) loadBundle(userID int64) (*models.FinancialData, error) {
	record, err := s.repo.LatestFinancialRecord(userID)
	if err != nil {
		return nil, err
	}

	if !utils.VerifyHMAC([]byte(record.Ciphertext), s.config.HMACSecret, record.HMAC) {
		return nil, fmt.Errorf("financial record %s failed integrity check", record.ID)
	}

	payload, err := utils.Decrypt(record.Ciphertext, s.config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt bundle: %w", err)
	}

	data := &models.FinancialData{}
	if err := json.Unmarshal(payload, data); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return data, nil
}

// Summary aggregates the authenticated user's latest bundle.
func (s *Service) Summary(ctx context.Context) (*models.Summary, error) {
	data, err := s.FinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return finance.Aggregate(data), nil
}

// Simulate aggregates the latest bundle and projects it forward under the
// given parameters. Invalid parameters surface finance.ErrInvalidParameter.
func (s *Service) Simulate(ctx context.Context, params models.SimulationParams) (*SimulationResult, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	projection, err := finance.Project(summary, params)
	if err != nil {
		return nil, err
	}
	return &SimulationResult{Summary: summary, Projection: projection}, nil
}

// Anomalies runs the anomaly detector over the user's latest bundle.
func (s *Service) Anomalies(ctx context.Context) (*models.AnomalyReport, error) {
	data, err := s.FinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return anomaly.Detect(data), nil
}

// RefreshAll regenerates the bundle for every consenting user and mails an
// anomaly alert when the fresh bundle trips the detector. Invoked by the
// scheduled refresh job.
func (s *Service) RefreshAll() error {
	ids, err := s.repo.ConsentingUserIDs()
	if err != nil {
		return err
	}

	for _, userID := range ids {
		if _, err := s.storeFreshBundle(userID); err != nil {
			s.log.Errorf("Failed to refresh bundle for user %d: %v", userID, err)
			continue
		}
		if s.mailer == nil {
			continue
		}

		data, err := s.loadBundle(userID)
		if err != nil {
			s.log.Errorf("Failed to reload bundle for user %d: %v", userID, err)
			continue
		}
		report := anomaly.Detect(data)
		if report.Count == 0 {
			continue
		}

		user, err := s.repo.FindUserByID(userID)
		if err != nil {
			s.log.Errorf("Failed to look up user %d for alerting: %v", userID, err)
			continue
		}
		if err := s.mailer.SendAnomalyAlert(user.Email, user.Username, report); err != nil {
			s.log.Errorf("Failed to send anomaly alert to %s: %v", user.Email, err)
		}
	}

	s.log.Infof("Refreshed financial bundles for %d users", len(ids))
	return nil
}

func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
