package models

// Push notification defaults shared by chat and announcements.
const (
	NotificationTitle = "Air Guard Chat"
	NotificationSound = "default"
)

// PushNotification is a fan-out request to the push gateway.
type PushNotification struct {
	To    []string `json:"to"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Sound string   `json:"sound"`
}

// Email is an outbound mail request. To may hold several comma separated
// addresses.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CredentialsEmail builds the message that tells a new user their initial
// password.
func CredentialsEmail(to string, role Role) Email {
	return Email{
		To:      to,
		Subject: "Your password for AirGuard App",
		Message: "Password: " + DefaultPassword(role),
	}
}
