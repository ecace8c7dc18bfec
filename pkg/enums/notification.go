package enums

// NotificationType categorizes operational alerts.
type NotificationType string

const (
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeDispute NotificationType = "dispute"
)

// NotificationStatus tracks whether staff acknowledged an alert.
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)
