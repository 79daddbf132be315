package scheduler

import "testing"

func TestStartTokenCleanupCronRejectsBadSpec(t *testing.T) {
	if _, err := StartTokenCleanupCron(nil, "not a cron spec"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStartTokenCleanupCronSchedules(t *testing.T) {
	c, err := StartTokenCleanupCron(nil, "0 3 * * *")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Stop()
	if n := len(c.Entries()); n != 1 {
		t.Errorf("entries = %d", n)
	}
}
