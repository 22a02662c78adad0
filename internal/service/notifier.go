package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridMailEndpoint = "/v3/mail/send"

type emailNotifier struct {
	apiKey   string
	host     string
	from     *mail.Email
	userRepo repository.UserRepository
}

// NewEmailNotifier sends resolution emails through SendGrid. An empty host
// uses the public SendGrid API.
func NewEmailNotifier(apiKey, host, fromEmail, fromName string, userRepo repository.UserRepository) Notifier {
	return &emailNotifier{
		apiKey:   apiKey,
		host:     host,
		from:     mail.NewEmail(fromName, fromEmail),
		userRepo: userRepo,
	}
}

func (n *emailNotifier) NotifyResolution(ctx context.Context, event *domain.Event, res domain.Resolution) error {
	requests := append(append([]domain.ParticipationRequest{}, res.Confirmed...), res.Rejected...)
	if len(requests) == 0 {
		return nil
	}

	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.RequesterID
	}
	users, err := n.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	var errs []error
	for _, r := range requests {
		u, ok := users[r.RequesterID]
		if !ok || u.Email == "" {
			continue
		}
		if err := n.send(ctx, u, event, r.Status); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *emailNotifier) send(ctx context.Context, to domain.User, event *domain.Event, status domain.RequestStatus) error {
	logger.ExternalServiceCall("sendgrid", "Send", "to", to.Email, "eventID", event.ID, "status", status)

	subject := fmt.Sprintf("Your request for %q was %s", event.Title, statusWord(status))
	body := fmt.Sprintf("Hello %s,\n\nYour participation request for %q on %s was %s.\n\nThe Event Hub Team",
		to.Name, event.Title, event.EventDate.Format("2006-01-02 15:04"), statusWord(status))
	message := mail.NewSingleEmail(n.from, subject, mail.NewEmail(to.Name, to.Email), body, "")

	request := sendgrid.GetRequest(n.apiKey, sendGridMailEndpoint, n.host)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func statusWord(status domain.RequestStatus) string {
	if status == domain.RequestStatusConfirmed {
		return "confirmed"
	}
	return "rejected"
}

type noopNotifier struct{}

// NewNoopNotifier is used when email delivery is not configured.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyResolution(context.Context, *domain.Event, domain.Resolution) error {
	return nil
}
