package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/pkg/config"
)

// Mailer sends transactional mail over SMTP. The booking usecase calls it
// from a goroutine, so a slow SMTP server never delays the booking response.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds the SMTP mailer from configuration.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendBookingConfirmation mails the customer a summary of the booking they
// just placed. Honors ctx cancellation while the SMTP dial is in flight.
func (m *Mailer) SendBookingConfirmation(ctx context.Context, to string, b *entity.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Booking Confirmed - %s", b.CustomBookingID))
	msg.SetBody("text/html", confirmationBody(b))

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send booking confirmation: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func confirmationBody(b *entity.Booking) string {
	return fmt.Sprintf(`
		<h2>Your booking is confirmed!</h2>
		<p>Thank you for booking with us. Here are your details:</p>
		<ul>
			<li><b>Booking ID:</b> %s</li>
			<li><b>Service:</b> %s</li>
			<li><b>Category:</b> %s</li>
			<li><b>Date:</b> %s at %s</li>
			<li><b>Address:</b> %s</li>
			<li><b>Total:</b> Rs. %d</li>
			<li><b>Payment:</b> %s (%s)</li>
		</ul>
		<p>A professional will be assigned shortly. You can track the status from your dashboard.</p>`,
		b.CustomBookingID, b.PackageName, b.ServiceCategory,
		b.BookingDate, b.BookingTime, b.ServiceAddress,
		b.TotalPrice, b.PaymentMethod, b.PaymentStatus)
}
