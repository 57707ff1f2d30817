package engine

import (
	"context"
	"fmt"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// mockMailbox serves canned attachments keyed by subject phrase.
type mockMailbox struct {
	attachments map[string]*model.Attachment
	errs        map[string]error
}

func newMockMailbox() *mockMailbox {
	return &mockMailbox{
		attachments: make(map[string]*model.Attachment),
		errs:        make(map[string]error),
	}
}

func (m *mockMailbox) FetchLatestAttachment(_ context.Context, subjectPhrase string) (*model.Attachment, error) {
	if err, ok := m.errs[subjectPhrase]; ok {
		return nil, err
	}
	att, ok := m.attachments[subjectPhrase]
	if !ok {
		return nil, fmt.Errorf("unexpected subject %q", subjectPhrase)
	}
	return att, nil
}

// stubDecoder resolves attachment bytes to pre-built tables, keyed by the
// attachment payload.
type stubDecoder struct {
	tables map[string]model.Table
}

func (d stubDecoder) Decode(data []byte) (model.Table, error) {
	table, ok := d.tables[string(data)]
	if !ok {
		return model.Table{}, fmt.Errorf("undecodable payload %q", string(data))
	}
	return table, nil
}
