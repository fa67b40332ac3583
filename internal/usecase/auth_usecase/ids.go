package auth

import (
	"time"

	"github.com/google/uuid"
)

// メールアドレスから UUIDv5 を作る
type UUIDGenerator struct{}

func (UUIDGenerator) UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
