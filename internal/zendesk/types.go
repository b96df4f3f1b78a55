package zendesk

// Ticket is the metadata snapshot of a helpdesk ticket.
type Ticket struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
	RequesterID int64  `json:"requester_id"`
}

// Comment is a single ticket comment. Body variants are populated by
// the API depending on the comment's origin; Text returns the first
// non-empty one.
type Comment struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"author_id"`
	Body      string `json:"body"`
	HTMLBody  string `json:"html_body"`
	PlainBody string `json:"plain_body"`
	Public    bool   `json:"public"`
	CreatedAt string `json:"created_at"`
}

// Text returns the first non-empty body variant, preferring plain text.
func (c Comment) Text() string {
	if c.PlainBody != "" {
		return c.PlainBody
	}
	if c.HTMLBody != "" {
		return c.HTMLBody
	}
	return c.Body
}

// Turn roles in an assembled conversation.
const (
	RoleCustomer     = "Customer"
	RoleSupportStaff = "Support Staff"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Conversation is the ordered customer/staff view over a ticket's
// public comments.
type Conversation struct {
	Subject string `json:"subject"`
	Turns   []Turn `json:"conversation"`
	Ticket  Ticket `json:"ticket"`
}
