package membership

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

type fakeAPI struct {
	calls   int
	results []func() (*tele.ChatMember, error)
}

func (f *fakeAPI) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i]()
}

func member(role tele.MemberStatus) func() (*tele.ChatMember, error) {
	return func() (*tele.ChatMember, error) {
		return &tele.ChatMember{Role: role}, nil
	}
}

func apiError() func() (*tele.ChatMember, error) {
	return func() (*tele.ChatMember, error) {
		return nil, errors.New("telegram: unavailable")
	}
}

func newTestChecker(api MemberAPI) *Checker {
	return NewChecker(api, Options{Attempts: 3, RetryDelay: 0})
}

func TestIsMemberRoles(t *testing.T) {
	cases := []struct {
		role      tele.MemberStatus
		want      bool
		wantCalls int
	}{
		{tele.Creator, true, 1},
		{tele.Administrator, true, 1},
		{tele.Member, true, 1},
		{tele.Left, false, 3},
		{tele.Kicked, false, 3},
		{tele.Restricted, false, 3},
	}
	for _, tc := range cases {
		api := &fakeAPI{results: []func() (*tele.ChatMember, error){member(tc.role)}}
		got := newTestChecker(api).IsMember(context.Background(), "@ch", 1)
		assert.Equal(t, tc.want, got, string(tc.role))
		assert.Equal(t, tc.wantCalls, api.calls, string(tc.role))
	}
}

func TestIsMemberStatusFlipDuringRetries(t *testing.T) {
	api := &fakeAPI{results: []func() (*tele.ChatMember, error){
		member(tele.Left),
		member(tele.Member),
	}}

	ok := newTestChecker(api).IsMember(context.Background(), "@ch", 1)
	assert.True(t, ok)
	assert.Equal(t, 2, api.calls)
}

func TestIsMemberRetriesThenSucceeds(t *testing.T) {
	api := &fakeAPI{results: []func() (*tele.ChatMember, error){
		apiError(),
		apiError(),
		member(tele.Member),
	}}

	ok := newTestChecker(api).IsMember(context.Background(), "@ch", 1)
	assert.True(t, ok)
	assert.Equal(t, 3, api.calls)
}

func TestIsMemberFailsClosed(t *testing.T) {
	api := &fakeAPI{results: []func() (*tele.ChatMember, error){apiError()}}

	ok := newTestChecker(api).IsMember(context.Background(), "@ch", 1)
	assert.False(t, ok)
	assert.Equal(t, 3, api.calls)
}

func TestIsMemberDefaultsApplied(t *testing.T) {
	api := &fakeAPI{results: []func() (*tele.ChatMember, error){apiError()}}
	c := NewChecker(api, Options{})

	assert.False(t, c.IsMember(context.Background(), "@ch", 1))
	assert.Equal(t, 3, api.calls)
}
