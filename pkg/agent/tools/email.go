package tools

import (
	"context"
	"fmt"
	"strings"

	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/llm"

	"github.com/go-playground/validator/v10"
)

const EmailToolName = "send_email"

// Mailer submits one outbound message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type emailArgs struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type Email struct {
	mailer   Mailer
	validate *validator.Validate
}

func NewEmail(mailer Mailer) *Email {
	return &Email{mailer: mailer, validate: validator.New()}
}

func (e *Email) Definition() llm.Tool {
	return llm.Tool{
		Name:        EmailToolName,
		Description: "Send an email to the candidate.",
		Parameters: objectSchema(map[string]interface{}{
			"to":      stringProp("Recipient email address"),
			"subject": stringProp("Email subject line"),
			"body":    stringProp("Plain text email body"),
		}, "to", "subject", "body"),
	}
}

func (e *Email) Call(ctx context.Context, arguments string) (string, error) {
	var args emailArgs
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	args.To = strings.TrimSpace(args.To)

	if err := e.validate.Struct(args); err != nil {
		return "", apperror.BadRequest("%s", describeValidation(err))
	}

	if err := e.mailer.Send(ctx, args.To, args.Subject, args.Body); err != nil {
		return "", apperror.Upstream("failed to send email", err)
	}
	return fmt.Sprintf("Email sent to %s", args.To), nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
