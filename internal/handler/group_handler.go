package handler

import (
	"errors"
	"log"
	"math"
	"net/http"

	"roundly/internal/domain"
	"roundly/internal/middleware"
	"roundly/internal/models"
	"roundly/internal/repository"
	"roundly/internal/roundup"

	"github.com/gin-gonic/gin"
)

// GroupHandler manages family and business tenants: creation, member
// invites and the aggregated group dashboard.
type GroupHandler struct {
	groups     *repository.GroupRepository
	users      *repository.UserRepository
	portfolios *repository.PortfolioRepository
	txs        *repository.TransactionRepository
	notifier   *roundup.Notifier
}

func NewGroupHandler(groups *repository.GroupRepository, users *repository.UserRepository, portfolios *repository.PortfolioRepository, txs *repository.TransactionRepository, notifier *roundup.Notifier) *GroupHandler {
	return &GroupHandler{groups: groups, users: users, portfolios: portfolios, txs: txs, notifier: notifier}
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

func (h *GroupHandler) CreateFamily(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if middleware.GetAccountType(c) != domain.AccountTypeFamily {
		c.JSON(http.StatusForbidden, gin.H{"error": "family account required"})
		return
	}
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := h.groups.FamilyForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already in a family"})
		return
	}
	f := &models.Family{Name: req.Name, OwnerID: userID}
	if err := h.groups.CreateFamily(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"family": f})
}

func (h *GroupHandler) CreateBusiness(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if middleware.GetAccountType(c) != domain.AccountTypeBusiness {
		c.JSON(http.StatusForbidden, gin.H{"error": "business account required"})
		return
	}
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := h.groups.BusinessForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already in a business"})
		return
	}
	b := &models.Business{Name: req.Name, OwnerID: userID}
	if err := h.groups.CreateBusiness(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"business": b})
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Invite adds a registered user to the caller's family or business. Only
// owners can invite; inviting an existing member is a no-op.
func (h *GroupHandler) Invite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invitee, err := h.users.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no account with that email"})
		return
	}

	var groupName string
	switch middleware.GetAccountType(c) {
	case domain.AccountTypeFamily:
		f, err := h.groups.FamilyForUser(userID)
		if err != nil || f == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no family found"})
			return
		}
		if f.OwnerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can invite"})
			return
		}
		if err := h.groups.AddFamilyMember(f.ID, invitee.ID); err != nil && !errors.Is(err, repository.ErrAlreadyMember) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invite failed"})
			return
		}
		groupName = f.Name
	case domain.AccountTypeBusiness:
		b, err := h.groups.BusinessForUser(userID)
		if err != nil || b == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no business found"})
			return
		}
		if b.OwnerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can invite"})
			return
		}
		if err := h.groups.AddBusinessMember(b.ID, invitee.ID); err != nil && !errors.Is(err, repository.ErrAlreadyMember) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invite failed"})
			return
		}
		groupName = b.Name
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "family or business account required"})
		return
	}

	if err := h.notifier.MemberInvited(invitee.ID, groupName); err != nil {
		log.Printf("invite notification failed for user %d: %v", invitee.ID, err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Dashboard aggregates portfolio value and round-up totals across every
// member of the caller's group.
func (h *GroupHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var memberIDs []uint
	var groupName string
	switch middleware.GetAccountType(c) {
	case domain.AccountTypeFamily:
		f, err := h.groups.FamilyForUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if f == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no family found"})
			return
		}
		memberIDs, err = h.groups.FamilyMemberUserIDs(f.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		groupName = f.Name
	case domain.AccountTypeBusiness:
		b, err := h.groups.BusinessForUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if b == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no business found"})
			return
		}
		memberIDs, err = h.groups.BusinessMemberUserIDs(b.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		groupName = b.Name
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "family or business account required"})
		return
	}

	totalValue, err := h.portfolios.TotalValue(memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregation failed"})
		return
	}
	totalRoundUps, err := h.txs.SumRoundUps(memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregation failed"})
		return
	}
	recent, err := h.txs.ListByUserIDs(memberIDs, 20, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_name":      groupName,
		"members":         len(memberIDs),
		"total_value":     math.Round(totalValue*100) / 100,
		"total_round_ups": math.Round(totalRoundUps*100) / 100,
		"recent":          recent,
	})
}
