package workspace

import (
	"workspace-service/internal/model"
	"workspace-service/pkg/store"
)

// NotificationsGet returns the caller's 20 most recent notifications, newest
// first.
func NotificationsGet(authUserID int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	err := store.View(func(s *model.Snapshot) error {
		if s.FindUser(authUserID) == nil {
			return validationError("user does not exist")
		}
		for i := range s.UserNotifications {
			if s.UserNotifications[i].UID != authUserID {
				continue
			}
			log := s.UserNotifications[i].Notifications
			if len(log) > 20 {
				log = log[:20]
			}
			notifications = append(notifications, log...)
			break
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
