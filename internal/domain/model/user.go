package model

import "encoding/json"

// ログイン中のユーザー（認証は擬似なのでパスワードやトークンは持たない）
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OptionalUser はログイン中のユーザーか、未ログインのどちらか。
// ゼロ値は未ログイン。
type OptionalUser struct {
	user User
	ok   bool
}

func SomeUser(u User) OptionalUser {
	return OptionalUser{user: u, ok: true}
}

func NoUser() OptionalUser {
	return OptionalUser{}
}

func (o OptionalUser) Get() (User, bool) {
	return o.user, o.ok
}

func (o OptionalUser) IsSome() bool {
	return o.ok
}

// 未ログインは null
func (o OptionalUser) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.user)
}
