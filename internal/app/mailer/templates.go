package mailer

import (
	"fmt"
	"strings"
	"time"
)

// Текстовые шаблоны писем. Чистые функции, собираются строковой интерполяцией:
// без HTML, без вложений, без локализации.

// BuildStatusChangeEmail — письмо клиенту о смене статуса заявки
func BuildStatusChangeEmail(businessName, oldLabel, newLabel, adminNotes, dashboardURL string) (subject, body string) {
	if adminNotes == "" {
		adminNotes = "Your request is being processed."
	}

	subject = fmt.Sprintf("Update: Your %s Website Request - %s", businessName, newLabel)

	body = strings.TrimSpace(fmt.Sprintf(`
Hi %s,

Your website request status has been updated!

OLD STATUS: %s
NEW STATUS: %s

NOTES FROM OUR TEAM:
%s

View your full request details here:
%s

Best regards,
Arka Team
`, businessName, oldLabel, newLabel, adminNotes, dashboardURL))

	return subject, body
}

// BuildNewRequestEmail — уведомление админу о новой заявке
func BuildNewRequestEmail(businessName, email, websiteType, description, budget string, loggedIn bool, now time.Time) (subject, body string) {
	if budget == "" {
		budget = "Not specified"
	}

	loggedInLine := "No (Anonymous)"
	if loggedIn {
		loggedInLine = "Yes"
	}

	subject = "New Website Request Received – Arka"

	body = strings.TrimSpace(fmt.Sprintf(`
New Website Request Received – Arka

---------- REQUEST DETAILS ----------
Business Name:   %s
Client Email:    %s
Website Type:    %s
Budget:          %s
Logged In:       %s
Submission Date: %s

---------- PROJECT DESCRIPTION ----------
%s

---------- END REQUEST ----------

Action Items:
1. Review the project requirements above
2. Contact the client at: %s
3. Follow up within 24 hours
4. Update request status in admin dashboard
`, businessName, email, websiteType, budget, loggedInLine,
		now.Format("2006-01-02 15:04:05"), description, email))

	return subject, body
}

// BuildConfirmationEmail — подтверждение клиенту после подачи заявки
func BuildConfirmationEmail(businessName, email string) (subject, body string) {
	subject = "Your Website Request Received – Arka"

	body = strings.TrimSpace(fmt.Sprintf(`
Thank you for requesting a website from Arka!

Hi %s,

We've received your website request and our team is reviewing your project details.

You can expect to hear from us within 24 hours at the email address you provided (%s).

In the meantime, if you have any questions or additional information to share, feel free to reply to this email.

Best regards,
The Arka Team
`, businessName, email))

	return subject, body
}

// BuildContactEmail — пересылка сообщения контактной формы админу
func BuildContactEmail(name, email, message string, now time.Time) (subject, body string) {
	subject = "New Contact Message – Arka"

	body = strings.TrimSpace(fmt.Sprintf(`
New Contact Message from Arka Website

---------- MESSAGE DETAILS ----------
Name:        %s
Email:       %s
Date & Time: %s

---------- MESSAGE ----------
%s

---------- END MESSAGE ----------

To reply, use the sender's email: %s
`, name, email, now.Format("2006-01-02 15:04:05"), message, email))

	return subject, body
}
