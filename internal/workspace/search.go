package workspace

import (
	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// Search returns every message containing the query, case-insensitively,
// across all channels and DMs the caller belongs to.
func Search(authUserID int, query string) ([]model.MessageView, error) {
	if runeLen(query) < 1 || runeLen(query) > 1000 {
		return nil, validationError("query must be between 1 and 1000 characters")
	}

	messages := []model.MessageView{}
	err := store.View(func(s *model.Snapshot) error {
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		for _, c := range s.Channels {
			if !c.HasMember(authUserID) {
				continue
			}
			for _, m := range c.Messages {
				if containsFold(m.Message, query) {
					messages = append(messages, m.View(authUserID))
				}
			}
		}
		for _, d := range s.Dms {
			if !d.HasMember(authUserID) {
				continue
			}
			for _, m := range d.Messages {
				if containsFold(m.Message, query) {
					messages = append(messages, m.View(authUserID))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
