package triage

import (
	"context"
	"log"

	"github.com/ziadkadry99/triagebot/internal/classifier"
	"github.com/ziadkadry99/triagebot/internal/zendesk"
)

// TicketAPI is the slice of the helpdesk gateway the pipeline needs.
type TicketAPI interface {
	GetTicketComments(ctx context.Context, ticketID int64, publicOnly bool) ([]zendesk.Comment, error)
	BuildConversation(ctx context.Context, ticketID int64, staffIDs []int64) (*zendesk.Conversation, error)
	AddPrivateComment(ctx context.Context, ticketID int64, bodyText string) error
}

// Outcome is the result of processing one webhook delivery.
type Outcome struct {
	TicketID       int64
	Skipped        bool
	SkipReason     string
	Classification string
	AnswerPosted   bool
}

// Processor runs the triage pipeline for one ticket: idempotency guard,
// conversation assembly, classification, classification note, and the
// optional response-template note.
type Processor struct {
	api        TicketAPI
	guard      Guard
	classifier classifier.Classifier
	resolver   *Resolver
	staffIDs   []int64
	debug      bool
}

// NewProcessor wires the pipeline stages together.
func NewProcessor(api TicketAPI, guard Guard, cls classifier.Classifier, resolver *Resolver, staffIDs []int64, debug bool) *Processor {
	return &Processor{
		api:        api,
		guard:      guard,
		classifier: cls,
		resolver:   resolver,
		staffIDs:   staffIDs,
		debug:      debug,
	}
}

// Process handles one ticket end to end. Side effects are real writes
// to the helpdesk; a failure part-way leaves the ticket partially
// updated, which the webhook endpoint accepts by design.
func (p *Processor) Process(ctx context.Context, ticketID int64) (*Outcome, error) {
	if handled, reason := p.guard.AlreadyHandled(ctx, ticketID); handled {
		return &Outcome{TicketID: ticketID, Skipped: true, SkipReason: reason}, nil
	}

	conv, err := p.api.BuildConversation(ctx, ticketID, p.staffIDs)
	if err != nil {
		return nil, err
	}

	result, err := p.classifier.Classify(ctx, conv.Subject, conv.Render())
	if err != nil {
		return nil, err
	}

	if p.debug {
		log.Printf("ticket %d classified as %s (confidence %d, strategy %s)",
			ticketID, result.Classification, result.Confidence, p.classifier.Name())
	}

	if err := p.api.AddPrivateComment(ctx, ticketID, result.NoteBody()); err != nil {
		return nil, err
	}

	outcome := &Outcome{TicketID: ticketID, Classification: result.Classification}

	if answer, ok := p.resolver.Lookup(result.Classification); ok {
		if err := p.api.AddPrivateComment(ctx, ticketID, answer); err != nil {
			return nil, err
		}
		outcome.AnswerPosted = true
		if p.debug {
			log.Printf("posted mapped internal answer for category %q", result.Classification)
		}
	}

	return outcome, nil
}
