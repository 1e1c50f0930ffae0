package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Aisha", "Budi", "Clara", "Dewi", "Eko", "Fajar", "Gita", "Hana",
	"Indra", "Joko", "Kartika", "Lina", "Maya", "Nadia", "Omar", "Putri",
	"Rizky", "Sari", "Tono", "Wulan",
}

var commonLastNames = []string{
	"Pratama", "Santoso", "Wijaya", "Kusuma", "Hidayat", "Utami", "Saputra",
	"Lestari", "Nugroho", "Rahayu", "Siregar", "Halim", "Gunawan", "Permata",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var clinicalRoles = []domain.Role{
	domain.RolePhysician,
	domain.RoleNurse,
	domain.RoleGeneralStaff,
}

func GenerateRandomClinicalRole() domain.Role {
	return clinicalRoles[rand.Intn(len(clinicalRoles))]
}

// GenerateRandomStaffMember builds a staff member in the given unit with a
// bcrypt hash of the shared seed password.
func GenerateRandomStaffMember(password, emailDomain, unit string, maxShifts int32) (*domain.StaffMember, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &domain.StaffMember{
		Username:           username,
		PasswordHash:       string(passwordHash),
		FullName:           fullName,
		Email:              username + "@" + emailDomain,
		Role:               GenerateRandomClinicalRole(),
		Unit:               unit,
		MaxShiftsPerPeriod: maxShifts,
	}

	return member, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

var shiftWindows = map[domain.ShiftCategory][2]string{
	domain.ShiftMorning:   {"07:00:00", "14:00:00"},
	domain.ShiftAfternoon: {"14:00:00", "21:00:00"},
	domain.ShiftNight:     {"21:00:00", "07:00:00"},
}

var shiftCategories = []domain.ShiftCategory{
	domain.ShiftMorning,
	domain.ShiftAfternoon,
	domain.ShiftNight,
}

// GenerateRandomShiftCategory picks a category together with its start and
// end times.
func GenerateRandomShiftCategory() (domain.ShiftCategory, string, string) {
	category := shiftCategories[rand.Intn(len(shiftCategories))]
	window := shiftWindows[category]
	return category, window[0], window[1]
}
