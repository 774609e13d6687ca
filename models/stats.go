package models

import (
	"context"
	"time"

	"github.com/golang/glog"

	h "github.com/talky-chat/talky-api/helpers"
)

// UpdateUserStats is a cron target that logs the size of the users table.
// It gives an operational heartbeat for the one table this service owns.
func UpdateUserStats() {
	db, err := h.GetConnection()
	if err != nil {
		glog.Errorf("h.GetConnection() %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var total int64
	err = db.QueryRowContext(ctx, `--UpdateUserStats
SELECT COUNT(*)
  FROM users`,
	).Scan(&total)
	if err != nil {
		glog.Errorf("db.QueryRowContext().Scan(&total) %+v", err)
		return
	}

	glog.Infof("users: %d as of %s", total, time.Now().Format(time.RFC3339))
}
