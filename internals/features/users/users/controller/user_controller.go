package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authModel "trainingcenter_backend/internals/features/users/auth/model"
	authService "trainingcenter_backend/internals/features/users/auth/service"
	"trainingcenter_backend/internals/features/users/users/dto"
	"trainingcenter_backend/internals/features/users/users/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: helper.NewValidator()}
}

// GET /api/users?role=&active=&q=
func (ctl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.User{})

	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		q = q.Where("user_role = ?", strings.ToLower(raw))
	}
	switch c.Query("active") {
	case "true", "1":
		q = q.Where("user_is_active")
	case "false", "0":
		q = q.Where("NOT user_is_active")
	}
	if id, err := helper.ParseUUIDQuery(c, "institution_id"); err != nil {
		return helper.JsonFromError(c, err)
	} else if id != nil {
		q = q.Where("? = ANY(user_institution_ids)", id.String())
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("user_full_name ILIKE ? OR user_email ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.User
	if err := q.Order("user_full_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "users", rows, helper.BuildPagination(total, paging, len(rows)))
}

func (ctl *UserController) find(c *fiber.Ctx) (*model.User, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := ctl.DB.WithContext(c.UserContext()).First(&u, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ctl *UserController) Get(c *fiber.Ctx) error {
	u, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "user", u)
}

func (ctl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := authService.ValidatePassword("user_password", req.Password); err != nil {
		return helper.JsonFromError(c, err)
	}
	role, err := dto.ParseRole(req.Role, req.InstitutionIDs)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}
	u := req.ToModel(role, hash)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonValidationError(c, map[string][]string{"user_email": {"already registered"}})
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "user created", u)
}

// PATCH /api/users/:id; an admin cannot demote or deactivate themselves.
func (ctl *UserController) Patch(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	u, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := req.Apply(u); err != nil {
		return helper.JsonFromError(c, err)
	}
	if u.UserID == sess.UserID && (u.UserRole != sess.Role || !u.UserIsActive) {
		return helper.JsonError(c, fiber.StatusConflict, "you cannot change your own role or deactivate yourself")
	}
	if req.Password != nil {
		if err := authService.ValidatePassword("user_password", *req.Password); err != nil {
			return helper.JsonFromError(c, err)
		}
		hash, err := authService.HashPassword(*req.Password)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
		}
		u.UserPassword = hash
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		if u.UserIsActive && req.Password == nil {
			return nil
		}
		return revokeSessions(tx, u)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonValidationError(c, map[string][]string{"user_email": {"already registered"}})
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "user updated", u)
}

// DELETE /api/users/:id deactivates; history keeps pointing at the user.
func (ctl *UserController) Delete(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	u, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if u.UserID == sess.UserID {
		return helper.JsonError(c, fiber.StatusConflict, "you cannot deactivate yourself")
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Update("user_is_active", false).Error; err != nil {
			return err
		}
		return revokeSessions(tx, u)
	})
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "user deactivated", fiber.Map{"user_id": u.UserID})
}

func revokeSessions(tx *gorm.DB, u *model.User) error {
	return tx.Model(&authModel.RefreshToken{}).
		Where("refresh_token_user_id = ? AND refresh_token_revoked_at IS NULL", u.UserID).
		Update("refresh_token_revoked_at", time.Now().UTC()).Error
}
