package email

// Sender delivers a single message. Callers only depend on the error
// signal to decide whether to report a send failure.
type Sender interface {
	Send(to, toName, subject, bodyText, bodyHTML string) error
}
