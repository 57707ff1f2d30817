// Package mail implements the mailbox collaborator over IMAP. The
// reconciliation core only sees the Mailbox interface; transport and auth
// live here.
package mail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	gomail "github.com/emersion/go-message/mail"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// Config holds IMAP connection settings.
type Config struct {
	// Address is the IMAP server host:port, e.g. "imap.gmail.com:993".
	Address  string
	Username string
	Password string
	// Folder defaults to INBOX.
	Folder string
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("%w: mail address", common.ErrMissingConfig)
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: mail credentials", common.ErrMissingConfig)
	}
	return nil
}

// Client is an IMAP-backed Mailbox. Each fetch dials, searches, and logs
// out; the tool runs to completion twice per invocation, so a held-open
// session buys nothing.
type Client struct {
	logger *slog.Logger
	config Config
}

// NewClient creates an IMAP mailbox client.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Folder == "" {
		config.Folder = "INBOX"
	}
	return &Client{config: config, logger: logger}, nil
}

// FetchLatestAttachment finds the most recent message whose subject
// contains subjectPhrase and returns its first xlsx attachment.
func (c *Client) FetchLatestAttachment(ctx context.Context, subjectPhrase string) (*model.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := client.DialTLS(c.config.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.config.Address, err)
	}
	defer func() {
		if logoutErr := conn.Logout(); logoutErr != nil {
			c.logger.Debug("imap logout failed", "error", logoutErr)
		}
	}()

	if err := conn.Login(c.config.Username, c.config.Password); err != nil {
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	if _, err := conn.Select(c.config.Folder, true); err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", c.config.Folder, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("Subject", subjectPhrase)
	ids, err := conn.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("imap search failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: subject %q", common.ErrNoMatchingMessage, subjectPhrase)
	}

	// Sequence numbers come back ascending; the highest is the latest.
	latest := ids[len(ids)-1]
	c.logger.Debug("found matching message",
		"subject_phrase", subjectPhrase,
		"matches", len(ids),
		"seq_num", latest)

	attachment, err := c.fetchAttachment(conn, latest)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, fmt.Errorf("%w: subject %q", common.ErrNoAttachment, subjectPhrase)
	}
	return attachment, nil
}

// fetchAttachment downloads one message and walks its MIME parts for the
// first xlsx attachment.
func (c *Client) fetchAttachment(conn *client.Client, seqNum uint32) (*model.Attachment, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNum)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- conn.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch failed: %w", err)
	}
	if msg == nil {
		return nil, fmt.Errorf("imap fetch returned no message for seq %d", seqNum)
	}

	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("imap fetch returned no body for seq %d", seqNum)
	}

	reader, err := gomail.CreateReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message part: %w", err)
		}

		header, ok := part.Header.(*gomail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, err := header.Filename()
		if err != nil || !IsSpreadsheetFilename(filename) {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %s: %w", filename, err)
		}

		c.logger.Debug("extracted attachment", "filename", filename, "bytes", len(data))
		return &model.Attachment{Filename: filename, Data: data}, nil
	}

	return nil, nil
}

// IsSpreadsheetFilename reports whether filename names an xlsx workbook.
func IsSpreadsheetFilename(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}
