package repository

import (
	"errors"

	"roundly/internal/domain"
	"roundly/internal/models"

	"gorm.io/gorm"
)

var ErrAlreadyMember = errors.New("user is already a member")

// GroupRepository manages family and business tenants and their memberships.
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) CreateFamily(f *models.Family) error {
	if err := r.db.Create(f).Error; err != nil {
		return err
	}
	return r.db.Create(&models.FamilyMember{FamilyID: f.ID, UserID: f.OwnerID, Role: domain.MemberRoleOwner}).Error
}

func (r *GroupRepository) CreateBusiness(b *models.Business) error {
	if err := r.db.Create(b).Error; err != nil {
		return err
	}
	return r.db.Create(&models.BusinessMember{BusinessID: b.ID, UserID: b.OwnerID, Role: domain.MemberRoleOwner}).Error
}

// FamilyForUser returns the family the user belongs to, or (nil, nil).
func (r *GroupRepository) FamilyForUser(userID uint) (*models.Family, error) {
	var m models.FamilyMember
	err := r.db.Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f models.Family
	if err := r.db.Preload("Members").First(&f, m.FamilyID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// BusinessForUser returns the business the user belongs to, or (nil, nil).
func (r *GroupRepository) BusinessForUser(userID uint) (*models.Business, error) {
	var m models.BusinessMember
	err := r.db.Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var b models.Business
	if err := r.db.Preload("Members").First(&b, m.BusinessID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// AddFamilyMember is create-if-absent: adding an existing member is an error
// the caller can treat as a no-op.
func (r *GroupRepository) AddFamilyMember(familyID, userID uint) error {
	var count int64
	r.db.Model(&models.FamilyMember{}).Where("family_id = ? AND user_id = ?", familyID, userID).Count(&count)
	if count > 0 {
		return ErrAlreadyMember
	}
	return r.db.Create(&models.FamilyMember{FamilyID: familyID, UserID: userID, Role: domain.MemberRoleMember}).Error
}

func (r *GroupRepository) AddBusinessMember(businessID, userID uint) error {
	var count int64
	r.db.Model(&models.BusinessMember{}).Where("business_id = ? AND user_id = ?", businessID, userID).Count(&count)
	if count > 0 {
		return ErrAlreadyMember
	}
	return r.db.Create(&models.BusinessMember{BusinessID: businessID, UserID: userID, Role: domain.MemberRoleMember}).Error
}

// FamilyMemberUserIDs lists the user ids a family dashboard aggregates over.
func (r *GroupRepository) FamilyMemberUserIDs(familyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.FamilyMember{}).Where("family_id = ?", familyID).Pluck("user_id", &ids).Error
	return ids, err
}

func (r *GroupRepository) BusinessMemberUserIDs(businessID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.BusinessMember{}).Where("business_id = ?", businessID).Pluck("user_id", &ids).Error
	return ids, err
}
