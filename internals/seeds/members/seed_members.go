package members

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clubfund_backend/internals/constants"
	authHelper "clubfund_backend/internals/features/users/auth/helper"
	"clubfund_backend/internals/features/users/members/model"
)

type MemberSeed struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// SeedMembersFromJSON akun awal (mis. SUPER_ADMIN pertama), langsung ACTIVE.
// Email yang sudah ada dilewati.
func SeedMembersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file member:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var inputs []MemberSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return err
	}

	for _, data := range inputs {
		email := authHelper.NormalizeEmail(data.Email)
		var existing model.MemberModel
		err := db.Where("member_email = ?", email).First(&existing).Error
		if err == nil {
			log.Printf("ℹ️ Member '%s' sudah ada, dilewati.", email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !constants.IsValidRole(data.Role) {
			data.Role = constants.RoleMember
		}
		if !constants.IsValidDepartment(data.Department) {
			data.Department = constants.DepartmentSinging
		}
		hashed, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
			continue
		}

		m := model.MemberModel{
			ID:         uuid.New(),
			Name:       data.Name,
			Email:      email,
			Password:   &hashed,
			Department: data.Department,
			Role:       data.Role,
			Status:     constants.MemberStatusActive,
		}
		if err := db.Create(&m).Error; err != nil {
			log.Printf("❌ Gagal insert member '%s': %v", email, err)
			continue
		}
		log.Printf("✅ Member '%s' (%s) dibuat", email, m.Role)
	}
	return nil
}
