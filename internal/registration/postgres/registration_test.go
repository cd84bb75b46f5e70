package postgres

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	paymentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/payment"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

func TestRegistrationRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Registration Repository Suite")
}

var _ = ginkgo.Describe("RegistrationRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository
	)

	ginkgo.BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &paymentDatamodel.Payment{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		repo = NewRepository(db)
	})

	ginkgo.Describe("GetUserByEmail", func() {
		ginkgo.It("should return nil for an unknown address", func() {
			// When
			user, err := repo.GetUserByEmail("nobody@example.com")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("CreateUserWithPayment", func() {
		ginkgo.It("should insert both rows and link the payment to the user", func() {
			// Given
			user := &userDatamodel.User{
				FirstName:            "Ari",
				LastName:             "Pratama",
				Email:                "ari@example.com",
				PasswordHash:         "hash",
				PhoneNumber:          "08123456789",
				DepartmentID:         1,
				RoleID:               2,
				SubscriptionTypeID:   2,
				RegistrationStatusID: 2,
				IsActive:             true,
			}
			evidence := "receipt_20250101000000.png"
			payment := &paymentDatamodel.Payment{
				SubscriptionTypeID: 2,
				PaymentEvidence:    &evidence,
				IsActive:           true,
			}

			// When
			err := repo.CreateUserWithPayment(user, payment)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(payment.UserID).To(gomega.Equal(user.ID))

			stored, err := repo.GetUserByEmail("ari@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stored).ToNot(gomega.BeNil())

			var storedPayment paymentDatamodel.Payment
			gomega.Expect(db.Where("user_id = ?", user.ID).First(&storedPayment).Error).ToNot(gomega.HaveOccurred())
			gomega.Expect(storedPayment.PaymentEvidence).ToNot(gomega.BeNil())
		})

		ginkgo.It("should reject a duplicate email at the unique index", func() {
			// Given
			first := &userDatamodel.User{
				FirstName: "Ari", LastName: "Pratama", Email: "ari@example.com",
				PasswordHash: "hash", RoleID: 2, RegistrationStatusID: 2, IsActive: true,
			}
			gomega.Expect(repo.CreateUserWithPayment(first, &paymentDatamodel.Payment{SubscriptionTypeID: 2})).To(gomega.Succeed())

			dup := &userDatamodel.User{
				FirstName: "Budi", LastName: "Santoso", Email: "ari@example.com",
				PasswordHash: "hash", RoleID: 2, RegistrationStatusID: 2, IsActive: true,
			}

			// When
			err := repo.CreateUserWithPayment(dup, &paymentDatamodel.Payment{SubscriptionTypeID: 2})

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
