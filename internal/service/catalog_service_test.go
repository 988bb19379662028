package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/internal/mocks"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

func TestCreateUser(t *testing.T) {
	users := &mocks.MockUserRepository{}
	s := NewCatalogService(users, &mocks.MockCatalogRepository{}, zap.NewNop())

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.IsActive && u.Role == domain.RoleTeacher
	})).Return(nil)

	user, err := s.CreateUser(context.Background(), &domain.CreateUserRequest{Username: "ivanova", Role: domain.RoleTeacher})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)

	_, err = s.CreateUser(context.Background(), &domain.CreateUserRequest{Username: "x", Role: "Janitor"})
	assert.ErrorIs(t, err, customError.ErrValidation)
	users.AssertNumberOfCalls(t, "Create", 1)
}

func TestSetCompensation(t *testing.T) {
	teacherID := uuid.New()

	tests := []struct {
		name       string
		role       domain.Role
		request    domain.SetCompensationRequest
		wantErr    bool
		wantPeriod domain.PaymentPeriod
	}{
		{
			name:       "period defaults to month",
			role:       domain.RoleTeacher,
			request:    domain.SetCompensationRequest{PaymentType: domain.PaymentTypeFixed, PaymentAmount: decimal.NewNullDecimal(dec("20000"))},
			wantPeriod: domain.PaymentPeriodMonth,
		},
		{
			name:       "rate may be left unset",
			role:       domain.RoleTeacher,
			request:    domain.SetCompensationRequest{PaymentType: domain.PaymentTypeHourly, PaymentPeriod: domain.PaymentPeriodPerLesson},
			wantPeriod: domain.PaymentPeriodPerLesson,
		},
		{
			name:    "negative rate",
			role:    domain.RoleTeacher,
			request: domain.SetCompensationRequest{PaymentType: domain.PaymentTypeHourly, PaymentAmount: decimal.NewNullDecimal(dec("-1"))},
			wantErr: true,
		},
		{
			name:    "not a teacher",
			role:    domain.RoleManager,
			request: domain.SetCompensationRequest{PaymentType: domain.PaymentTypeHourly},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.MockUserRepository{}
			s := NewCatalogService(users, &mocks.MockCatalogRepository{}, zap.NewNop())

			users.On("GetByID", mock.Anything, teacherID).Return(&domain.User{ID: teacherID, Role: tt.role}, nil)
			users.On("UpsertTeacherProfile", mock.Anything, mock.Anything).Return(nil)

			profile, err := s.SetCompensation(context.Background(), teacherID, &tt.request)

			if tt.wantErr {
				assert.ErrorIs(t, err, customError.ErrValidation)
				users.AssertNotCalled(t, "UpsertTeacherProfile", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPeriod, profile.PaymentPeriod)
			assert.Equal(t, teacherID, profile.UserID)
		})
	}
}

func TestCreateGroup_TeacherMustBeTeacher(t *testing.T) {
	users := &mocks.MockUserRepository{}
	catalog := &mocks.MockCatalogRepository{}
	s := NewCatalogService(users, catalog, zap.NewNop())
	studentID := uuid.New()

	users.On("GetByID", mock.Anything, studentID).Return(&domain.User{ID: studentID, Role: domain.RoleStudent}, nil)

	_, err := s.CreateGroup(context.Background(), &domain.CreateGroupRequest{
		Name:           "Python-1",
		DirectionID:    uuid.New(),
		TeacherID:      &studentID,
		Format:         domain.GroupFormatOffline,
		LessonDuration: 2,
	})

	assert.ErrorIs(t, err, customError.ErrValidation)
	catalog.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
}

func TestDeleteClassroom_NotFound(t *testing.T) {
	catalog := &mocks.MockCatalogRepository{}
	s := NewCatalogService(&mocks.MockUserRepository{}, catalog, zap.NewNop())
	id := uuid.New()

	catalog.On("DeleteClassroom", mock.Anything, id).Return(customError.WrapNotFound("classroom", id.String()))

	err := s.DeleteClassroom(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrNotFound)
}
