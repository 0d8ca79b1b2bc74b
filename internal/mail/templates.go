// Eyedea | 2026
// templates.go

package mail

import (
	"fmt"
	"html"
)

func IdeaSubmitted(approverName, submitterName, ideaNumber, title string) Email {
	return Email{
		Subject: fmt.Sprintf("New idea %s awaiting your review", ideaNumber),
		HTML: fmt.Sprintf(`
			<h2>New Idea Submitted</h2>
			<p>Hi %s,</p>
			<p>%s submitted idea <strong>%s</strong>: %s.</p>
			<p>Please review it in the Eyedea portal.</p>`,
			html.EscapeString(approverName),
			html.EscapeString(submitterName),
			html.EscapeString(ideaNumber),
			html.EscapeString(title),
		),
	}
}

func IdeaApproved(submitterName, ideaNumber, title string) Email {
	return Email{
		Subject: fmt.Sprintf("Your idea %s was approved", ideaNumber),
		HTML: fmt.Sprintf(`
			<h2>Idea Approved</h2>
			<p>Hi %s,</p>
			<p>Your idea <strong>%s</strong> (%s) has been approved and
			forwarded to the C.I. Excellence team for evaluation.</p>`,
			html.EscapeString(submitterName),
			html.EscapeString(ideaNumber),
			html.EscapeString(title),
		),
	}
}

func IdeaDeclined(submitterName, ideaNumber, title, comment string) Email {
	body := fmt.Sprintf(`
		<h2>Idea Declined</h2>
		<p>Hi %s,</p>
		<p>Your idea <strong>%s</strong> (%s) has been declined.</p>`,
		html.EscapeString(submitterName),
		html.EscapeString(ideaNumber),
		html.EscapeString(title),
	)
	if comment != "" {
		body += fmt.Sprintf("<p>Reviewer comment: %s</p>", html.EscapeString(comment))
	}

	return Email{
		Subject: fmt.Sprintf("Your idea %s was declined", ideaNumber),
		HTML:    body,
	}
}

func IdeaRevisionRequested(submitterName, ideaNumber, title, comment string) Email {
	return Email{
		Subject: fmt.Sprintf("Revision requested for idea %s", ideaNumber),
		HTML: fmt.Sprintf(`
			<h2>Revision Requested</h2>
			<p>Hi %s,</p>
			<p>Your idea <strong>%s</strong> (%s) needs changes before it
			can be approved.</p>
			<p>Reviewer comment: %s</p>
			<p>Please update and resubmit it in the Eyedea portal.</p>`,
			html.EscapeString(submitterName),
			html.EscapeString(ideaNumber),
			html.EscapeString(title),
			html.EscapeString(comment),
		),
	}
}

func IdeaResubmitted(approverName, submitterName, ideaNumber, title string) Email {
	return Email{
		Subject: fmt.Sprintf("Idea %s was resubmitted", ideaNumber),
		HTML: fmt.Sprintf(`
			<h2>Idea Resubmitted</h2>
			<p>Hi %s,</p>
			<p>%s revised and resubmitted idea <strong>%s</strong>: %s.</p>
			<p>Please review the updated version in the Eyedea portal.</p>`,
			html.EscapeString(approverName),
			html.EscapeString(submitterName),
			html.EscapeString(ideaNumber),
			html.EscapeString(title),
		),
	}
}

func IdeaEvaluated(submitterName, ideaNumber, title, status string) Email {
	return Email{
		Subject: fmt.Sprintf("Your idea %s was evaluated", ideaNumber),
		HTML: fmt.Sprintf(`
			<h2>Idea Evaluated</h2>
			<p>Hi %s,</p>
			<p>The C.I. Excellence team evaluated your idea
			<strong>%s</strong> (%s). Its status is now: %s.</p>`,
			html.EscapeString(submitterName),
			html.EscapeString(ideaNumber),
			html.EscapeString(title),
			html.EscapeString(status),
		),
	}
}

func PasswordReset(name, resetURL string) Email {
	return Email{
		Subject: "Reset your Eyedea password",
		HTML: fmt.Sprintf(`
			<h2>Password Reset</h2>
			<p>Hi %s,</p>
			<p>We received a request to reset your password. The link below
			is valid for one hour.</p>
			<p><a href="%s">Reset password</a></p>
			<p>If you did not request this, you can ignore this email.</p>`,
			html.EscapeString(name),
			resetURL,
		),
	}
}
