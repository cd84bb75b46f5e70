package user_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/membership-management/internal/auth"
	departmentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/department"
	subscriptionDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/subscription"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
	"github.com/frahmantamala/membership-management/internal/user"
	userPostgres "github.com/frahmantamala/membership-management/internal/user/postgres"
)

func TestUserHandler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Handler Suite")
}

var _ = Describe("User Handler Integration", func() {
	var (
		db      *gorm.DB
		service *user.Service
		handler *user.Handler
		router  *chi.Mux
	)

	serveAs := func(identity *auth.Identity, method, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		if identity != nil {
			req = req.WithContext(auth.ContextWithIdentity(req.Context(), identity))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&departmentDatamodel.Department{},
			&subscriptionDatamodel.SubscriptionType{},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&departmentDatamodel.Department{ID: 1, Name: "Engineering", IsActive: true}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&subscriptionDatamodel.SubscriptionType{ID: 2, Name: "Yearly", IsActive: true}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.User{
			ID: 1, FirstName: "Ari", LastName: "Pratama", Email: "ari@example.com",
			PasswordHash: "hash", PhoneNumber: "08123456789", DepartmentID: 1,
			RoleID: auth.RoleRegular, SubscriptionTypeID: 2, RegistrationStatusID: 3,
			IsActive: true, CreatedAt: time.Now(),
		}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.User{
			ID: 2, FirstName: "Budi", LastName: "Santoso", Email: "budi@example.com",
			PasswordHash: "hash", PhoneNumber: "08198765432", DepartmentID: 1,
			RoleID: auth.RoleRegular, SubscriptionTypeID: 2, RegistrationStatusID: 2,
			IsActive: true, CreatedAt: time.Now(),
		}).Error).NotTo(HaveOccurred())

		repo := userPostgres.NewRepository(db)
		service = user.NewService(repo, slogger)
		handler = user.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/users/me", handler.Me)
		router.Get("/users/{id}", handler.GetByID)
	})

	Describe("GET /users/me", func() {
		It("should return the caller's joined profile", func() {
			w := serveAs(&auth.Identity{UserID: 1, Email: "ari@example.com", RoleID: auth.RoleRegular}, http.MethodGet, "/users/me")

			Expect(w.Code).To(Equal(http.StatusOK))

			var profile user.Profile
			Expect(json.NewDecoder(w.Body).Decode(&profile)).To(Succeed())
			Expect(profile.UserID).To(Equal(int64(1)))
			Expect(profile.DepartmentName).To(Equal("Engineering"))
			Expect(profile.SubscriptionTypeName).To(Equal("Yearly"))
		})

		It("should reject unauthenticated requests", func() {
			w := serveAs(nil, http.MethodGet, "/users/me")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /users/{id}", func() {
		It("should let a user read their own profile", func() {
			w := serveAs(&auth.Identity{UserID: 1, RoleID: auth.RoleRegular}, http.MethodGet, "/users/1")

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should deny a regular user reading someone else's profile", func() {
			w := serveAs(&auth.Identity{UserID: 1, RoleID: auth.RoleRegular}, http.MethodGet, "/users/2")

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should let an admin read any profile", func() {
			w := serveAs(&auth.Identity{UserID: 99, RoleID: auth.RoleAdmin}, http.MethodGet, "/users/2")

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should report not found for a missing user", func() {
			w := serveAs(&auth.Identity{UserID: 42, RoleID: auth.RoleAdmin}, http.MethodGet, "/users/42")

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
