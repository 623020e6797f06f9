package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Email:        "student@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	// Повторная регистрация с тем же email
	_, err = storage.RegisterUser(ctx, models.User{
		Email:        "student@example.com",
		PasswordHash: "otherpassword",
		Role:         models.RoleUser,
		IsActive:     true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestStorage_CourseCRUD(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner@example.com", "hashedpassword", "user")

	price := 199.0
	courseID, err := storage.CreateCourse(ctx, models.Course{
		OwnerUID:    ownerUID,
		Title:       "Go с нуля",
		Description: "Вводный курс",
		Price:       &price,
	})
	require.NoError(t, err)

	course, err := storage.ReadCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, "Go с нуля", course.Title)
	assert.Equal(t, ownerUID, course.OwnerUID)
	require.NotNil(t, course.Price)
	assert.InDelta(t, 199.0, *course.Price, 0.001)
	assert.Nil(t, course.UpdatedAt)

	count, err := storage.UpdateCourse(ctx, models.DummyCourse{
		Title:       "Go с нуля, 2-е издание",
		Description: "Обновлённая программа",
	}, courseID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	course, err = storage.ReadCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, "Go с нуля, 2-е издание", course.Title)
	assert.NotNil(t, course.UpdatedAt)

	count, err = storage.RemoveCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = storage.ReadCourse(ctx, courseID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	verification := NewTestVerification(storage)
	verification.VerifyCourseDeleted(t, courseID)
}

func TestStorage_ListCoursesVisibility(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	firstOwner := factory.CreateUser(t, "first@example.com", "hashedpassword", "user")
	secondOwner := factory.CreateUser(t, "second@example.com", "hashedpassword", "user")

	factory.CreateCourse(t, firstOwner, "Курс первого", nil)
	factory.CreateCourse(t, firstOwner, "Ещё курс первого", nil)
	factory.CreateCourse(t, secondOwner, "Курс второго", nil)

	own, err := storage.ListCoursesByOwner(ctx, firstOwner, 10, 0)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := storage.ListAllCourses(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStorage_Subscriptions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner@example.com", "hashedpassword", "user")
	userUID := factory.CreateUser(t, "subscriber@example.com", "hashedpassword", "user")
	courseID := factory.CreateCourse(t, ownerUID, "Курс", nil)

	id, err := storage.CreateSubscription(ctx, userUID, courseID)
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Уникальность пары (пользователь, курс)
	_, err = storage.CreateSubscription(ctx, userUID, courseID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDuplicate)

	exists, err := storage.ExistsSubscription(ctx, userUID, courseID)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := storage.RemoveSubscription(ctx, userUID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exists, err = storage.ExistsSubscription(ctx, userUID, courseID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStorage_ListSubscriberInfo(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner@example.com", "hashedpassword", "user")
	firstUID := factory.CreateUser(t, "first@example.com", "hashedpassword", "user")
	secondUID := factory.CreateUser(t, "second@example.com", "hashedpassword", "user")
	courseID := factory.CreateCourse(t, ownerUID, "Алгоритмы", nil)
	otherCourseID := factory.CreateCourse(t, ownerUID, "Другой курс", nil)

	factory.CreateSubscriptionRow(t, firstUID, courseID)
	factory.CreateSubscriptionRow(t, secondUID, courseID)
	factory.CreateSubscriptionRow(t, firstUID, otherCourseID)

	infos, err := storage.ListSubscriberInfo(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	emails := []string{infos[0].Email, infos[1].Email}
	assert.ElementsMatch(t, []string{"first@example.com", "second@example.com"}, emails)
	assert.Equal(t, "Алгоритмы", infos[0].CourseTitle)
}

func TestStorage_DeactivateInactiveUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	staleUID := factory.CreateUserWithLastLogin(t, "stale@example.com", time.Now().Add(-40*24*time.Hour))
	freshUID := factory.CreateUserWithLastLogin(t, "fresh@example.com", time.Now().Add(-time.Hour))

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	count, err := storage.DeactivateInactiveUsers(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	verification := NewTestVerification(storage)
	verification.VerifyUserActive(t, staleUID, false)
	verification.VerifyUserActive(t, freshUID, true)

	// Повторный запуск ничего не меняет
	count, err = storage.DeactivateInactiveUsers(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_Payments(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner@example.com", "hashedpassword", "user")
	userUID := factory.CreateUser(t, "buyer@example.com", "hashedpassword", "user")
	courseID := factory.CreateCourse(t, ownerUID, "Курс", nil)

	id, err := storage.CreatePayment(ctx, models.Payment{
		UserUID:         userUID,
		CourseID:        &courseID,
		Amount:          199.0,
		Method:          models.MethodStripe,
		StripeProductID: "prod_1",
		StripePriceID:   "price_1",
		StripeSessionID: "cs_1",
		CheckoutURL:     "https://pay.example/cs_1",
		Status:          models.PaymentStatusPending,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	payments, err := storage.ListPayments(ctx, models.PaymentFilter{CourseID: &courseID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStatusPending, payments[0].Status)
	assert.Equal(t, "cs_1", payments[0].StripeSessionID)

	other := models.MethodCash
	payments, err = storage.ListPayments(ctx, models.PaymentFilter{Method: other}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, payments)
}
