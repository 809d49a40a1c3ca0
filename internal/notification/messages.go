package notification

import "fmt"

// Message builders for every lifecycle transition and auth flow. Keeping the
// wording here keeps the services free of presentation strings.

func OTPMessage(otp string) (subject, body string) {
	return "Verify your email",
		fmt.Sprintf("Your OTP code is %s\n\nThe code expires shortly. If you did not request it, ignore this email.", otp)
}

func PasswordResetMessage(name, resetLink string) (subject, body string) {
	return "Password reset request",
		fmt.Sprintf("Dear %s,\n\nA password reset was requested for your account. Follow the link below to choose a new password:\n\n%s\n\nThe link is valid for a limited time and can be used once.", name, resetLink)
}

func DonationSubmittedMessage(donorName, donationID string) (subject, body string) {
	return "New donation request",
		fmt.Sprintf("A new donation request is awaiting review.\n\nDonor: %s\nDonation ID: %s", donorName, donationID)
}

func DonationAcceptedMessage(donorName string) (subject, body string) {
	return "Donation accepted",
		fmt.Sprintf("Dear %s,\n\nYour donation request has been accepted. An agent will be assigned to collect it soon.", donorName)
}

func DonationRejectedMessage(donorName string) (subject, body string) {
	return "Donation rejected",
		fmt.Sprintf("Dear %s,\n\nWe are sorry, your donation request could not be accepted this time.", donorName)
}

func AgentAssignedMessage(agentName, address string, adminMsg string) (subject, body string) {
	body = fmt.Sprintf("Dear %s,\n\nA donation has been assigned to you for collection.\nPickup address: %s", agentName, address)
	if adminMsg != "" {
		body += "\nMessage from admin: " + adminMsg
	}
	return "Donation assigned to you", body
}

func DonorAssignedMessage(donorName, agentName string) (subject, body string) {
	return "Agent assigned to your donation",
		fmt.Sprintf("Dear %s,\n\nAgent %s has been assigned to collect your donation.", donorName, agentName)
}

func DonationCollectedDonorMessage(donorName string) (subject, body string) {
	return "Donation collected",
		fmt.Sprintf("Dear %s,\n\nYour donation has been successfully collected. Thank you for your generosity!", donorName)
}

func DonationCollectedAdminMessage(donorName, donationID string) (subject, body string) {
	return "Donation collected",
		fmt.Sprintf("A donation has been collected.\n\nDonor: %s\nDonation ID: %s", donorName, donationID)
}
