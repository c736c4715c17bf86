package user

import (
	"net/http"

	"github.com/Hazemprogammar/SudanEdu/internal/controller"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type WalletController struct {
	walletService service.WalletService
}

func NewWalletController(walletService service.WalletService) *WalletController {
	return &WalletController{walletService: walletService}
}

// GetBalance godoc
// @Summary Get the user's points balance
// @Description Returns the materialized balance; the transaction log is an audit view, never consulted here.
// @Tags Wallet
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /wallet/balance [get]
func (c *WalletController) GetBalance(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	balance, err := c.walletService.Balance(userID)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// GetTransactions godoc
// @Summary List the user's points transactions
// @Description Most recent first.
// @Tags Wallet
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} dto.PointsTransactionResponse
// @Router /wallet/transactions [get]
func (c *WalletController) GetTransactions(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	transactions, err := c.walletService.Transactions(userID)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve transactions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, transactions)
}

// PurchasePoints godoc
// @Summary Purchase points
// @Description Credits purchased points. Payment is assumed to have cleared with the external gateway.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body dto.PurchasePointsRequest true "Purchase details"
// @Success 200 {object} dto.PointsTransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Router /wallet/purchase [post]
func (c *WalletController) PurchasePoints(ctx *gin.Context) {
	var req dto.PurchasePointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PurchasePoints: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	transaction, err := c.walletService.Purchase(req.UserID, req.Amount, req.Description)
	if err != nil {
		log.Warn().Err(err).Str("userID", req.UserID).Msg("PurchasePoints: Service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, transaction)
}

// TransferPoints godoc
// @Summary Transfer points to another user
// @Description Debits the sender and credits the receiver atomically, then queues a notification to each.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body dto.TransferPointsRequest true "Transfer details"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse "Invalid amount, self transfer, or insufficient balance"
// @Failure 404 {object} dto.ErrorResponse "Sender or receiver not found"
// @Router /wallet/transfer [post]
func (c *WalletController) TransferPoints(ctx *gin.Context) {
	var req dto.TransferPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("TransferPoints: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.walletService.Transfer(req.FromUserID, req.ToUserID, req.Amount, req.Description); err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
