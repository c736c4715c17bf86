package user

import (
	"net/http"

	"github.com/Hazemprogammar/SudanEdu/internal/controller"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ReferralController struct {
	referralService service.ReferralService
}

func NewReferralController(referralService service.ReferralService) *ReferralController {
	return &ReferralController{referralService: referralService}
}

// RegisterReferral godoc
// @Summary Register a new user under a referral code
// @Description Credits the referrer the configured bonus and queues an invite notification.
// @Tags Referrals
// @Accept json
// @Produce json
// @Param referral_code path string true "Referrer's code"
// @Param request body dto.RegisterReferralRequest true "Newly registered user"
// @Success 200 {object} dto.ReferralResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown referral code"
// @Router /referrals/register/{referral_code} [post]
func (c *ReferralController) RegisterReferral(ctx *gin.Context) {
	var req dto.RegisterReferralRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("RegisterReferral: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	referral, err := c.referralService.Register(ctx.Param("referral_code"), req.NewUserID)
	if err != nil {
		log.Warn().Err(err).Str("referralCode", ctx.Param("referral_code")).Msg("RegisterReferral: Service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, referral)
}

// GetReferralStats godoc
// @Summary Get the user's referral statistics
// @Tags Referrals
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.ReferralStatsResponse
// @Router /referrals/stats [get]
func (c *ReferralController) GetReferralStats(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	stats, err := c.referralService.Stats(userID)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve referral stats", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
