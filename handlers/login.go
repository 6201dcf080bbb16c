package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"conference-central/database"
	"conference-central/errors"
	"conference-central/middleware"
	"conference-central/model"
)

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

func (a *API) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	creds := new(Credentials)
	if err := parseBody(c, creds); err != nil {
		return a.fail(c, err)
	}
	if err := validateStruct(creds); err != nil {
		return a.fail(c, err)
	}

	user, err := a.Store.GetUserData(c.UserContext(), creds.Login)
	if stderrors.Is(err, database.ErrNotFound) {
		return a.fail(c, errors.Unauthorized("Invalid login or password"))
	}
	if err != nil {
		return a.fail(c, err)
	}
	if !isPasswordHashCorrect(user.HashedPassword, creds.Password) {
		return a.fail(c, errors.Unauthorized("Invalid login or password"))
	}

	nickname := user.DisplayName
	if nickname == "" {
		nickname = user.Login
	}
	t, err := middleware.IssueToken(a.Secret, model.Identity{
		UserId:   user.Id,
		Email:    user.Email,
		Nickname: nickname,
	}, a.TokenTTL)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}
