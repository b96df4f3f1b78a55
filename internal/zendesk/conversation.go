package zendesk

import (
	"context"
	"fmt"
	"strings"
)

// BuildConversation assembles the ordered customer/staff view of a
// ticket from its public comments. The first public comment is dropped
// when its plain text exactly equals the ticket description, since it
// duplicates the opening message. A comment's turn is labeled as
// support staff iff its author is in staffIDs.
func (c *Client) BuildConversation(ctx context.Context, ticketID int64, staffIDs []int64) (*Conversation, error) {
	ticket, err := c.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	comments, err := c.GetTicketComments(ctx, ticketID, true)
	if err != nil {
		return nil, err
	}

	return assembleConversation(*ticket, comments, staffIDs), nil
}

func assembleConversation(ticket Ticket, comments []Comment, staffIDs []int64) *Conversation {
	staff := make(map[int64]bool, len(staffIDs))
	for _, id := range staffIDs {
		staff[id] = true
	}

	dupFirst := len(comments) > 0 &&
		strings.TrimSpace(comments[0].PlainBody) == strings.TrimSpace(ticket.Description)

	conv := &Conversation{
		Subject: ticket.Subject,
		Ticket:  ticket,
	}
	for i, cm := range comments {
		if i == 0 && dupFirst {
			continue
		}
		text := strings.TrimSpace(cm.Text())
		if text == "" {
			continue
		}
		role := RoleCustomer
		if staff[cm.AuthorID] {
			role = RoleSupportStaff
		}
		conv.Turns = append(conv.Turns, Turn{Role: role, Message: text})
	}
	return conv
}

// Render flattens the conversation into the text block given to a
// classifier, one turn per segment.
func (c *Conversation) Render() string {
	segments := make([]string, 0, len(c.Turns))
	for _, t := range c.Turns {
		segments = append(segments, fmt.Sprintf("%s:\n%s", t.Role, t.Message))
	}
	return strings.Join(segments, "\n\n---\n\n")
}
