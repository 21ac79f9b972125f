package apistrings

const (
	/// Basic Auth Related Strings
	IncorrectEmailPass   = "incorrect email or password"
	InvalidLoginInput    = "please enter a valid email and password"
	UnauthorizedRequest  = "not authorized to access this resource"
	InvalidUserIDSegment = "invalid user id in path"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Wallet Related Strings
	WalletNotFound       = "Wallet not found for this user"
	RecipientNotFound    = "Recipient wallet does not exist"
	DuplicateWallet      = "user already has a wallet"
	CreateInProgress     = "wallet creation already in progress for this user"
	InvalidWalletInput   = "check 'user_id' key, invalid request"
	InvalidTopUpInput    = "check 'amount' or 'remark' keys, invalid request"
	InvalidTransferInput = "check 'to_user_id', 'amount' or 'remark' keys, invalid request"
	AmountNotPositive    = "amount must be greater than zero"
	InsufficientFunds    = "insufficient balance for this transfer"
	SelfTransfer         = "cannot transfer funds to your own wallet"
)
