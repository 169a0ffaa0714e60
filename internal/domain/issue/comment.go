package issue

import (
	"fmt"
	"time"
)

// Comment is one message in an issue's conversation thread. Internal
// comments are agent-only notes excluded from customer-facing views.
type Comment struct {
	id         uint
	issueID    uint
	authorID   uint
	authorRole string
	content    string
	isInternal bool
	createdAt  time.Time
}

func NewComment(issueID, authorID uint, authorRole, content string, isInternal bool) (*Comment, error) {
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content is required")
	}
	if len(content) > 10000 {
		return nil, fmt.Errorf("content exceeds maximum length of 10000 characters")
	}

	return &Comment{
		issueID:    issueID,
		authorID:   authorID,
		authorRole: authorRole,
		content:    content,
		isInternal: isInternal,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructComment(id, issueID, authorID uint, authorRole, content string, isInternal bool, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	return &Comment{
		id:         id,
		issueID:    issueID,
		authorID:   authorID,
		authorRole: authorRole,
		content:    content,
		isInternal: isInternal,
		createdAt:  createdAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) IssueID() uint        { return c.issueID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) AuthorRole() string   { return c.authorRole }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) IsInternal() bool     { return c.isInternal }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
