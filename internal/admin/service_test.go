package admin_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/membership-management/internal"
	"github.com/frahmantamala/membership-management/internal/admin"
	paymentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/payment"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

func TestAdminService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Admin Service Suite")
}

// Mock repository for testing. WithinTransaction snapshots the stores and
// restores them when fn fails, mirroring a database rollback.
type mockAdminRepository struct {
	users    map[int64]*userDatamodel.User
	payments map[int64]*paymentDatamodel.Payment

	listItems []admin.UserListItem

	getUserError    error
	getPaymentError error
	updateError     error
	listError       error
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{
		users:    make(map[int64]*userDatamodel.User),
		payments: make(map[int64]*paymentDatamodel.Payment),
	}
}

func (m *mockAdminRepository) snapshot() (map[int64]userDatamodel.User, map[int64]paymentDatamodel.Payment) {
	users := make(map[int64]userDatamodel.User, len(m.users))
	for id, u := range m.users {
		users[id] = *u
	}
	payments := make(map[int64]paymentDatamodel.Payment, len(m.payments))
	for id, p := range m.payments {
		payments[id] = *p
	}
	return users, payments
}

func (m *mockAdminRepository) restore(users map[int64]userDatamodel.User, payments map[int64]paymentDatamodel.Payment) {
	m.users = make(map[int64]*userDatamodel.User, len(users))
	for id := range users {
		u := users[id]
		m.users[id] = &u
	}
	m.payments = make(map[int64]*paymentDatamodel.Payment, len(payments))
	for id := range payments {
		p := payments[id]
		m.payments[id] = &p
	}
}

func (m *mockAdminRepository) WithinTransaction(fn func(tx admin.Repository) error) error {
	users, payments := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(users, payments)
		return err
	}
	return nil
}

func (m *mockAdminRepository) GetUserForUpdate(userID int64) (*userDatamodel.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	return m.users[userID], nil
}

func (m *mockAdminRepository) GetLatestPaymentForUpdate(userID int64) (*paymentDatamodel.Payment, error) {
	if m.getPaymentError != nil {
		return nil, m.getPaymentError
	}
	var latest *paymentDatamodel.Payment
	for _, p := range m.payments {
		if p.UserID != userID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (m *mockAdminRepository) UpdateRegistrationStatus(userID int64, statusID int64) error {
	if m.updateError != nil {
		return m.updateError
	}
	if u, ok := m.users[userID]; ok {
		u.RegistrationStatusID = statusID
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockAdminRepository) SetSubscriptionWindow(paymentID int64, start, end *time.Time) error {
	if m.updateError != nil {
		return m.updateError
	}
	if p, ok := m.payments[paymentID]; ok {
		p.SubscriptionStartDate = start
		p.SubscriptionEndDate = end
	}
	return nil
}

func (m *mockAdminRepository) GetUser(userID int64) (*userDatamodel.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	return m.users[userID], nil
}

func (m *mockAdminRepository) UpdateUserFields(userID int64, fields map[string]interface{}) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	u, ok := m.users[userID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["first_name"]; ok {
		u.FirstName = v.(string)
	}
	if v, ok := fields["last_name"]; ok {
		u.LastName = v.(string)
	}
	if v, ok := fields["phone_number"]; ok {
		u.PhoneNumber = v.(string)
	}
	return 1, nil
}

func (m *mockAdminRepository) SetActive(userID int64, active bool) error {
	if m.updateError != nil {
		return m.updateError
	}
	if u, ok := m.users[userID]; ok {
		u.IsActive = active
	}
	return nil
}

func (m *mockAdminRepository) ListUsers() ([]admin.UserListItem, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.listItems, nil
}

var _ = Describe("AdminService", func() {
	var (
		adminService *admin.Service
		mockRepo     *mockAdminRepository
		logger       *slog.Logger
	)

	newUser := func(id int64, statusID int64, active bool) *userDatamodel.User {
		return &userDatamodel.User{
			ID:                   id,
			FirstName:            "Ari",
			LastName:             "Pratama",
			Email:                "ari@example.com",
			PhoneNumber:          "08123456789",
			RoleID:               2,
			RegistrationStatusID: statusID,
			IsActive:             active,
			CreatedAt:            time.Now(),
		}
	}

	newPayment := func(id, userID, subscriptionTypeID int64) *paymentDatamodel.Payment {
		return &paymentDatamodel.Payment{
			ID:                 id,
			UserID:             userID,
			SubscriptionTypeID: subscriptionTypeID,
			IsActive:           true,
			CreatedAt:          time.Now(),
		}
	}

	BeforeEach(func() {
		mockRepo = newMockAdminRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		adminService = admin.NewService(mockRepo, logger)
	})

	Describe("Transition", func() {
		Context("when approving a pending user with a yearly subscription", func() {
			It("should stamp a 365-day subscription window", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)
				mockRepo.payments[10] = newPayment(10, 1, admin.SubscriptionYearly)

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.SubscriptionStartDate).ToNot(BeNil())
				Expect(result.SubscriptionEndDate).ToNot(BeNil())
				Expect(*result.SubscriptionStartDate).To(BeTemporally("~", time.Now(), time.Second))
				expectedEnd := result.SubscriptionStartDate.AddDate(0, 0, 365)
				Expect(*result.SubscriptionEndDate).To(Equal(expectedEnd))

				Expect(mockRepo.users[1].RegistrationStatusID).To(Equal(admin.StatusApproved))
				Expect(mockRepo.payments[10].SubscriptionStartDate).ToNot(BeNil())
				Expect(mockRepo.payments[10].SubscriptionEndDate).ToNot(BeNil())
			})
		})

		Context("when approving a pending user with a lifetime subscription", func() {
			It("should set the start date and leave the end date empty", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)
				mockRepo.payments[10] = newPayment(10, 1, admin.SubscriptionLifetime)

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.SubscriptionStartDate).ToNot(BeNil())
				Expect(result.SubscriptionEndDate).To(BeNil())
				Expect(mockRepo.payments[10].SubscriptionStartDate).ToNot(BeNil())
				Expect(mockRepo.payments[10].SubscriptionEndDate).To(BeNil())
			})
		})

		Context("when the user is already approved", func() {
			It("should return a conflict and change nothing", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusApproved, true)

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).To(Equal(apperrors.ErrAlreadyApproved))
				Expect(result).To(BeNil())
				Expect(mockRepo.users[1].RegistrationStatusID).To(Equal(admin.StatusApproved))
			})
		})

		Context("when moving an approved user back to pending", func() {
			It("should clear the subscription window", func() {
				// Given
				start := time.Now().AddDate(0, -1, 0)
				end := start.AddDate(0, 0, 365)
				mockRepo.users[1] = newUser(1, admin.StatusApproved, true)
				p := newPayment(10, 1, admin.SubscriptionYearly)
				p.SubscriptionStartDate = &start
				p.SubscriptionEndDate = &end
				mockRepo.payments[10] = p

				// When
				result, err := adminService.Transition(1, admin.StatusPending)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.SubscriptionStartDate).To(BeNil())
				Expect(result.SubscriptionEndDate).To(BeNil())
				Expect(mockRepo.users[1].RegistrationStatusID).To(Equal(admin.StatusPending))
				Expect(mockRepo.payments[10].SubscriptionStartDate).To(BeNil())
				Expect(mockRepo.payments[10].SubscriptionEndDate).To(BeNil())
			})
		})

		Context("when the payment row has an unknown subscription type", func() {
			It("should reject the approval and leave the user untouched", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)
				mockRepo.payments[10] = newPayment(10, 1, 99)

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).To(Equal(apperrors.ErrInvalidSubscriptionType))
				Expect(result).To(BeNil())
				Expect(mockRepo.users[1].RegistrationStatusID).To(Equal(admin.StatusPending))
				Expect(mockRepo.payments[10].SubscriptionStartDate).To(BeNil())
			})
		})

		Context("when the user has no payment record", func() {
			It("should return payment not found", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).To(Equal(apperrors.ErrPaymentNotFound))
				Expect(result).To(BeNil())
				Expect(mockRepo.users[1].RegistrationStatusID).To(Equal(admin.StatusPending))
			})
		})

		Context("when the user is inactive", func() {
			It("should refuse the transition", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, false)
				mockRepo.payments[10] = newPayment(10, 1, admin.SubscriptionYearly)

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).To(Equal(apperrors.ErrUserInactive))
				Expect(result).To(BeNil())
			})
		})

		Context("when the user does not exist", func() {
			It("should return user not found", func() {
				// When
				result, err := adminService.Transition(999, admin.StatusApproved)

				// Then
				Expect(err).To(Equal(apperrors.ErrUserNotFound))
				Expect(result).To(BeNil())
			})
		})

		Context("when the requested status is outside the known set", func() {
			It("should reject before touching storage", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)

				// When
				result, err := adminService.Transition(1, 42)

				// Then
				Expect(err).To(Equal(apperrors.ErrInvalidStatus))
				Expect(result).To(BeNil())
			})
		})

		Context("when rejecting a pending user", func() {
			It("should update only the status column", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)
				mockRepo.payments[10] = newPayment(10, 1, admin.SubscriptionYearly)

				// When
				result, err := adminService.Transition(1, admin.StatusRejected)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.SubscriptionStartDate).To(BeNil())
				Expect(mockRepo.users[1].RegistrationStatusID).To(Equal(admin.StatusRejected))
				Expect(mockRepo.payments[10].SubscriptionStartDate).To(BeNil())
			})
		})

		Context("when a status write fails mid-transaction", func() {
			It("should surface an internal error", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusPending, true)
				mockRepo.payments[10] = newPayment(10, 1, admin.SubscriptionYearly)
				mockRepo.updateError = errors.New("database error")

				// When
				result, err := adminService.Transition(1, admin.StatusApproved)

				// Then
				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
			})
		})
	})

	Describe("UpdateUser", func() {
		Context("when updating profile fields", func() {
			It("should apply only the provided fields", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusApproved, true)
				firstName := "Budi"

				// When
				err := adminService.UpdateUser(1, admin.UpdateUserDTO{FirstName: &firstName})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.users[1].FirstName).To(Equal("Budi"))
				Expect(mockRepo.users[1].LastName).To(Equal("Pratama"))
			})
		})

		Context("when no fields are provided", func() {
			It("should return a validation error", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusApproved, true)

				// When
				err := adminService.UpdateUser(1, admin.UpdateUserDTO{})

				// Then
				Expect(err).To(Equal(apperrors.ErrEmptyUpdate))
			})
		})

		Context("when the user does not exist", func() {
			It("should return not found", func() {
				// Given
				firstName := "Budi"

				// When
				err := adminService.UpdateUser(999, admin.UpdateUserDTO{FirstName: &firstName})

				// Then
				Expect(err).To(Equal(apperrors.ErrUserNotFound))
			})
		})
	})

	Describe("SetActive", func() {
		Context("when deactivating an active user", func() {
			It("should flip the flag", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusApproved, true)

				// When
				err := adminService.SetActive(1, false)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.users[1].IsActive).To(BeFalse())
			})
		})

		Context("when the user already has the requested state", func() {
			It("should return a conflict", func() {
				// Given
				mockRepo.users[1] = newUser(1, admin.StatusApproved, true)

				// When
				err := adminService.SetActive(1, true)

				// Then
				Expect(err).To(Equal(apperrors.ErrStatusUnchanged))
			})
		})

		Context("when the user does not exist", func() {
			It("should return not found", func() {
				// When
				err := adminService.SetActive(999, true)

				// Then
				Expect(err).To(Equal(apperrors.ErrUserNotFound))
			})
		})
	})

	Describe("ListUsers", func() {
		Context("when users exist", func() {
			It("should return the joined projection", func() {
				// Given
				mockRepo.listItems = []admin.UserListItem{
					{UserID: 1, Email: "ari@example.com", DepartmentName: "Engineering"},
					{UserID: 2, Email: "budi@example.com", DepartmentName: "Finance"},
				}

				// When
				result, err := adminService.ListUsers()

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result).To(HaveLen(2))
				Expect(result[0].DepartmentName).To(Equal("Engineering"))
			})
		})

		Context("when the repository fails", func() {
			It("should return an internal error", func() {
				// Given
				mockRepo.listError = errors.New("database error")

				// When
				result, err := adminService.ListUsers()

				// Then
				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})
})
