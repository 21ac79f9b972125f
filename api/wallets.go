package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/VeloPay/VeloPay-Console/api/apistrings"
	"github.com/VeloPay/VeloPay-Console/db"
	"github.com/VeloPay/VeloPay-Console/models"
	"github.com/VeloPay/VeloPay-Console/utils"
	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type Wallet struct {
	server *Server
}

func (w Wallet) router(server *Server) {
	w.server = server

	serverGroup := server.router.Group("/transactions/wallet")
	serverGroup.Use(AuthenticatedMiddleware())
	serverGroup.GET("/:userID", w.getBalance)
	serverGroup.POST("/create", w.createWallet)
	serverGroup.POST("/topup/:userID", w.topUpWallet)
	serverGroup.POST("/transfer/:userID", w.transferFunds)
	serverGroup.GET("/:userID/transactions", w.getTransactions)
}

func (w *Wallet) getBalance(ctx *gin.Context) {
	userID, err := pathUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidUserIDSegment))
		return
	}

	wallet, err := w.server.store.GetWallet(ctx, userID)
	if err == db.ErrWalletNotFound {
		ctx.JSON(http.StatusNotFound, models.NewError(apistrings.WalletNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, models.BalanceResponse{
		UserID:  wallet.UserID,
		Balance: wallet.Balance,
	})
}

func (w *Wallet) createWallet(ctx *gin.Context) {
	request := models.CreateWalletRequest{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidWalletInput))
		return
	}

	// Absorb double submissions racing through before the first create
	// commits. The store's uniqueness constraint remains the backstop.
	guardKey := fmt.Sprintf("wallet-create:%d", request.UserID)
	if !w.server.guard.InsertNew(guardKey, true) {
		ctx.JSON(http.StatusConflict, models.NewError(apistrings.CreateInProgress))
		return
	}
	defer w.server.guard.Remove(guardKey)

	wallet, err := w.server.store.CreateWallet(ctx, request.UserID, w.server.config.WalletCurrency)
	if err == db.ErrDuplicateWallet {
		ctx.JSON(http.StatusConflict, models.NewError(apistrings.DuplicateWallet))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, models.WalletResponse{
		UserID:    wallet.UserID,
		Balance:   wallet.Balance,
		Currency:  wallet.Currency,
		CreatedAt: wallet.CreatedAt,
	})
}

func (w *Wallet) topUpWallet(ctx *gin.Context) {
	userID, err := pathUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidUserIDSegment))
		return
	}

	request := models.TopUpRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidTopUpInput))
		return
	}

	if !request.Amount.IsPositive() {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.AmountNotPositive))
		return
	}

	operator, err := utils.ActiveOperator(ctx)
	if err != nil || !utils.IsSuperAdmin(operator) {
		ctx.JSON(http.StatusForbidden, models.NewError(apistrings.UnauthorizedRequest))
		return
	}
	w.server.logger.WithField("operator_id", operator.UserID).
		WithField("user_id", userID).
		Info("wallet top-up requested")

	tx, err := w.server.store.TopUp(ctx, userID, request.Amount, request.Remark)
	if err == db.ErrWalletNotFound {
		ctx.JSON(http.StatusNotFound, models.NewError(apistrings.WalletNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, models.MutationResponse{
		Message: "Wallet topped up successfully!",
		Balance: tx.BalanceAfter,
	})
}

func (w *Wallet) transferFunds(ctx *gin.Context) {
	fromUserID, err := pathUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidUserIDSegment))
		return
	}

	request := models.TransferRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidTransferInput))
		return
	}

	if !request.Amount.IsPositive() {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.AmountNotPositive))
		return
	}

	operator, err := utils.ActiveOperator(ctx)
	if err != nil || !utils.IsSuperAdmin(operator) {
		ctx.JSON(http.StatusForbidden, models.NewError(apistrings.UnauthorizedRequest))
		return
	}
	w.server.logger.WithField("operator_id", operator.UserID).
		WithField("from_user_id", fromUserID).
		WithField("to_user_id", request.ToUserID).
		Info("wallet transfer requested")

	// Resolve the sender first so a missing sender wallet reports as 404
	// and a missing recipient as a policy rejection.
	if _, err := w.server.store.GetWallet(ctx, fromUserID); err == db.ErrWalletNotFound {
		ctx.JSON(http.StatusNotFound, models.NewError(apistrings.WalletNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	result, err := w.server.store.Transfer(ctx, fromUserID, request.ToUserID, request.Amount, request.Remark)
	switch err {
	case nil:
	case db.ErrWalletNotFound:
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.RecipientNotFound))
		return
	case db.ErrInsufficientFunds:
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InsufficientFunds))
		return
	case db.ErrSelfTransfer:
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.SelfTransfer))
		return
	default:
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, models.MutationResponse{
		Message: fmt.Sprintf("Successfully transferred %s to user %d", request.Amount.StringFixed(2), request.ToUserID),
		Balance: result.SenderBalance,
	})
}

func (w *Wallet) getTransactions(ctx *gin.Context) {
	userID, err := pathUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidUserIDSegment))
		return
	}

	limit := queryInt32(ctx, "limit", defaultHistoryLimit)
	offset := queryInt32(ctx, "offset", 0)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	transactions, total, err := w.server.store.ListTransactions(ctx, userID, limit, offset)
	if err == db.ErrWalletNotFound {
		ctx.JSON(http.StatusNotFound, models.NewError(apistrings.WalletNotFound))
		return
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	response := models.TransactionListResponse{
		Transactions: make([]models.TransactionResponse, len(transactions)),
		TotalCount:   total,
	}
	for i, tx := range transactions {
		response.Transactions[i] = models.TransactionResponse{
			ID:           tx.ID,
			CreatedAt:    tx.CreatedAt,
			Type:         tx.Type,
			Amount:       tx.Amount,
			BalanceAfter: tx.BalanceAfter,
			ReferenceID:  tx.ReferenceID,
			Remark:       tx.Remark,
		}
	}

	ctx.JSON(http.StatusOK, response)
}

func pathUserID(ctx *gin.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("userID"), 10, 64)
}

func queryInt32(ctx *gin.Context, key string, fallback int32) int32 {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(parsed)
}
