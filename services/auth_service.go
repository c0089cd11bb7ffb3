package services

import (
	"errors"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/config"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/models"
	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Disabled: false,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", err
	}

	return token, nil
}

func RequestPasswordReset(email string) error {
	var user models.User
	if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		// don't leak which emails exist
		return nil
	}

	user.ResetToken = utils.GenerateResetToken()
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(user.Email, user.ResetToken)
}

func ResetPassword(email, token, newPassword string) error {
	if token == "" {
		return errors.New("invalid reset token")
	}

	var user models.User
	if err := config.DB.Where("email = ? AND reset_token = ?", email, token).First(&user).Error; err != nil {
		return errors.New("invalid reset token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	return config.DB.Save(&user).Error
}
