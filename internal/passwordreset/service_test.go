package passwordreset_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/membership-management/internal"
	"github.com/frahmantamala/membership-management/internal/auth"
	otpDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/otp"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
	"github.com/frahmantamala/membership-management/internal/passwordreset"
)

func TestPasswordResetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PasswordReset Service Suite")
}

// Mock repository for testing
type mockResetRepository struct {
	usersByEmail map[string]*userDatamodel.User
	usersByID    map[int64]*userDatamodel.User
	otps         map[int64]*otpDatamodel.PasswordResetOTP
	passwords    map[int64]string

	lookupError error
	createError error
	updateError error
	nextOTPID   int64
}

func newMockResetRepository() *mockResetRepository {
	return &mockResetRepository{
		usersByEmail: make(map[string]*userDatamodel.User),
		usersByID:    make(map[int64]*userDatamodel.User),
		otps:         make(map[int64]*otpDatamodel.PasswordResetOTP),
		passwords:    make(map[int64]string),
		nextOTPID:    1,
	}
}

func (m *mockResetRepository) addUser(u *userDatamodel.User) {
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
}

func (m *mockResetRepository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	return m.usersByEmail[email], nil
}

func (m *mockResetRepository) GetUserByID(userID int64) (*userDatamodel.User, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	return m.usersByID[userID], nil
}

func (m *mockResetRepository) CreateOTP(record *otpDatamodel.PasswordResetOTP) error {
	if m.createError != nil {
		return m.createError
	}
	record.ID = m.nextOTPID
	m.nextOTPID++
	m.otps[record.ID] = record
	return nil
}

func (m *mockResetRepository) GetUnusedOTP(userID int64, code string) (*otpDatamodel.PasswordResetOTP, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	for _, record := range m.otps {
		if record.UserID == userID && record.OTPCode == code && !record.IsUsed {
			return record, nil
		}
	}
	return nil, nil
}

func (m *mockResetRepository) ConsumeOTP(otpID int64) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	record, ok := m.otps[otpID]
	if !ok || record.IsUsed {
		return 0, nil
	}
	record.IsUsed = true
	return 1, nil
}

func (m *mockResetRepository) UpdatePassword(userID int64, passwordHash string) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.passwords[userID] = passwordHash
	if u, ok := m.usersByID[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

// Mock email sender for testing
type mockEmailSender struct {
	sentTo      string
	sentSubject string
	sentBody    string
	sendError   error
}

func (m *mockEmailSender) Send(to, toName, subject, bodyText, bodyHTML string) error {
	if m.sendError != nil {
		return m.sendError
	}
	m.sentTo = to
	m.sentSubject = subject
	m.sentBody = bodyText
	return nil
}

var _ = Describe("PasswordResetService", func() {
	var (
		service    *passwordreset.Service
		mockRepo   *mockResetRepository
		mockSender *mockEmailSender
		hasher     *auth.PasswordHasher
		logger     *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockResetRepository()
		mockSender = &mockEmailSender{}
		hasher = auth.NewPasswordHasher(4)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = passwordreset.NewService(mockRepo, hasher, mockSender, 10*time.Minute, logger)
	})

	Describe("RequestOTP", func() {
		Context("when the account exists and is active", func() {
			It("should store a 6-digit code and email it", func() {
				// Given
				mockRepo.addUser(&userDatamodel.User{ID: 1, Email: "ari@example.com", FirstName: "Ari", IsActive: true})

				// When
				result, err := service.RequestOTP(passwordreset.ForgotPasswordDTO{Email: "ari@example.com"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.UserID).To(Equal(int64(1)))
				Expect(mockRepo.otps).To(HaveLen(1))
				for _, record := range mockRepo.otps {
					Expect(record.OTPCode).To(HaveLen(6))
					Expect(record.IsUsed).To(BeFalse())
					Expect(record.ExpiryTime).To(BeTemporally("~", time.Now().Add(10*time.Minute), time.Minute))
					Expect(mockSender.sentBody).To(ContainSubstring(record.OTPCode))
				}
				Expect(mockSender.sentTo).To(Equal("ari@example.com"))
				Expect(mockSender.sentSubject).To(Equal("Password Reset OTP"))
			})
		})

		Context("when the email is unknown", func() {
			It("should return not found", func() {
				// When
				result, err := service.RequestOTP(passwordreset.ForgotPasswordDTO{Email: "nobody@example.com"})

				// Then
				Expect(err).To(Equal(apperrors.ErrUserNotFound))
				Expect(result).To(BeNil())
			})
		})

		Context("when the account is deactivated", func() {
			It("should refuse to send an OTP", func() {
				// Given
				mockRepo.addUser(&userDatamodel.User{ID: 1, Email: "ari@example.com", IsActive: false})

				// When
				result, err := service.RequestOTP(passwordreset.ForgotPasswordDTO{Email: "ari@example.com"})

				// Then
				Expect(err).To(Equal(apperrors.ErrUserInactive))
				Expect(result).To(BeNil())
				Expect(mockRepo.otps).To(BeEmpty())
			})
		})

		Context("when the email cannot be sent", func() {
			It("should return an internal error", func() {
				// Given
				mockRepo.addUser(&userDatamodel.User{ID: 1, Email: "ari@example.com", IsActive: true})
				mockSender.sendError = errors.New("smtp unavailable")

				// When
				result, err := service.RequestOTP(passwordreset.ForgotPasswordDTO{Email: "ari@example.com"})

				// Then
				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				Expect(err.Error()).To(ContainSubstring("Failed to send OTP email"))
			})
		})
	})

	Describe("VerifyOTP", func() {
		seedOTP := func(code string, expiry time.Time, used bool) *otpDatamodel.PasswordResetOTP {
			record := &otpDatamodel.PasswordResetOTP{
				UserID:     1,
				OTPCode:    code,
				ExpiryTime: expiry,
				IsUsed:     used,
				CreatedAt:  time.Now(),
			}
			_ = mockRepo.CreateOTP(record)
			return record
		}

		Context("when the code is valid and fresh", func() {
			It("should consume it", func() {
				// Given
				record := seedOTP("123456", time.Now().Add(5*time.Minute), false)

				// When
				err := service.VerifyOTP(passwordreset.VerifyOTPDTO{UserID: 1, OTP: "123456"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(record.IsUsed).To(BeTrue())
			})
		})

		Context("when the code was already used", func() {
			It("should report invalid OTP even before expiry", func() {
				// Given
				seedOTP("123456", time.Now().Add(5*time.Minute), true)

				// When
				err := service.VerifyOTP(passwordreset.VerifyOTPDTO{UserID: 1, OTP: "123456"})

				// Then
				Expect(err).To(Equal(apperrors.ErrInvalidOTP))
			})
		})

		Context("when the code has expired", func() {
			It("should report expiry and leave the code unconsumed", func() {
				// Given
				record := seedOTP("123456", time.Now().Add(-time.Minute), false)

				// When
				err := service.VerifyOTP(passwordreset.VerifyOTPDTO{UserID: 1, OTP: "123456"})

				// Then
				Expect(err).To(Equal(apperrors.ErrOTPExpired))
				Expect(record.IsUsed).To(BeFalse())
			})
		})

		Context("when the code was never issued", func() {
			It("should report invalid OTP", func() {
				// When
				err := service.VerifyOTP(passwordreset.VerifyOTPDTO{UserID: 1, OTP: "000000"})

				// Then
				Expect(err).To(Equal(apperrors.ErrInvalidOTP))
			})
		})

		Context("when the code belongs to another user", func() {
			It("should report invalid OTP", func() {
				// Given
				seedOTP("123456", time.Now().Add(5*time.Minute), false)

				// When
				err := service.VerifyOTP(passwordreset.VerifyOTPDTO{UserID: 2, OTP: "123456"})

				// Then
				Expect(err).To(Equal(apperrors.ErrInvalidOTP))
			})
		})
	})

	Describe("ResetPassword", func() {
		Context("when the user exists", func() {
			It("should store a new hash", func() {
				// Given
				mockRepo.addUser(&userDatamodel.User{ID: 1, Email: "ari@example.com", IsActive: true})

				// When
				err := service.ResetPassword(passwordreset.ResetPasswordDTO{UserID: 1, NewPassword: "brandnewpass"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				ok, verr := hasher.Verify("brandnewpass", mockRepo.passwords[1])
				Expect(verr).ToNot(HaveOccurred())
				Expect(ok).To(BeTrue())
			})
		})

		Context("when the user does not exist", func() {
			It("should return not found", func() {
				// When
				err := service.ResetPassword(passwordreset.ResetPasswordDTO{UserID: 999, NewPassword: "brandnewpass"})

				// Then
				Expect(err).To(Equal(apperrors.ErrUserNotFound))
			})
		})
	})

	Describe("ChangePassword", func() {
		var currentHash string

		BeforeEach(func() {
			var err error
			currentHash, err = hasher.Hash("currentpass1")
			Expect(err).ToNot(HaveOccurred())
			mockRepo.addUser(&userDatamodel.User{ID: 1, Email: "ari@example.com", PasswordHash: currentHash, IsActive: true})
		})

		Context("when the current password is correct", func() {
			It("should replace the hash", func() {
				// When
				err := service.ChangePassword(1, passwordreset.ChangePasswordDTO{
					CurrentPassword: "currentpass1",
					NewPassword:     "differentpass",
				})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.passwords[1]).ToNot(Equal(currentHash))
			})
		})

		Context("when the current password is wrong", func() {
			It("should return unauthorized", func() {
				// When
				err := service.ChangePassword(1, passwordreset.ChangePasswordDTO{
					CurrentPassword: "wrongpass99",
					NewPassword:     "differentpass",
				})

				// Then
				Expect(err).To(Equal(apperrors.ErrWrongPassword))
			})
		})

		Context("when the new password matches the current one", func() {
			It("should reject the change", func() {
				// When
				err := service.ChangePassword(1, passwordreset.ChangePasswordDTO{
					CurrentPassword: "currentpass1",
					NewPassword:     "currentpass1",
				})

				// Then
				Expect(err).To(Equal(apperrors.ErrSamePassword))
			})
		})
	})
})
