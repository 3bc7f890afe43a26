package constvars

const (
	PaystackInitializePath = "/transaction/initialize"
	PaystackVerifyPath     = "/transaction/verify/%s"
	PaystackSubaccountPath = "/subaccount"

	PaystackSignatureHeader = "x-paystack-signature"

	PaystackEventChargeSuccess = "charge.success"

	PaystackStatusSuccess   = "success"
	PaystackStatusFailed    = "failed"
	PaystackStatusAbandoned = "abandoned"
)
