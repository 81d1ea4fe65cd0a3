package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{query: "Hi, I am Jack", want: "Jack", wantOK: true},
		{query: "hi, i am jack. Remember my name.", want: "jack", wantOK: true},
		{query: "My name is Noah", want: "Noah", wantOK: true},
		{query: "Call me Sarah.", want: "Sarah", wantOK: true},
		{query: "can you call me Noah moving forward?", want: "Noah", wantOK: true},
		{query: "Call me Zoë", want: "Zoë", wantOK: true},
		{query: "My name is Émile", want: "Émile", wantOK: true},
		{query: "Hi, I am José. Where is room 2?", want: "José", wantOK: true},
		{query: "call me 李雷", want: "李雷", wantOK: true},
		{query: "tell me about DNS", wantOK: false},
		{query: "I am at room 1, what should I do?", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := ExtractName(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateUpdateFromQuery(t *testing.T) {
	s := NewState()
	assert.Equal(t, DefaultUserName, s.UserName())

	name, changed := s.UpdateFromQuery("Call me Sarah")
	assert.True(t, changed)
	assert.Equal(t, "Sarah", name)
	assert.Equal(t, "Sarah", s.UserName())

	_, changed = s.UpdateFromQuery("Call me Sarah")
	assert.False(t, changed, "same name is not an update")

	_, changed = s.UpdateFromQuery("My name is user")
	assert.False(t, changed, "placeholder name is ignored")
	assert.Equal(t, "Sarah", s.UserName())

	name, changed = s.UpdateFromQuery("where is room 2?")
	assert.False(t, changed)
	assert.Equal(t, "Sarah", name, "the name in effect is returned without a statement")

	name, changed = s.UpdateFromQuery("Call me Zoë")
	assert.True(t, changed)
	assert.Equal(t, "Zoë", name)
	assert.Contains(t, Acknowledgement(name), "Hi! Zoë.")

	_, changed = s.UpdateFromQuery("what is phishing?")
	assert.False(t, changed)
}

func TestStateConcurrentAccess(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	for _, n := range []string{"Ann", "Bob", "Cid", "Dee"} {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			s.UpdateFromQuery("Call me " + n)
			_ = s.UserName()
		}(n)
	}
	wg.Wait()
	assert.Contains(t, []string{"Ann", "Bob", "Cid", "Dee"}, s.UserName())
}

func TestSplitSentences(t *testing.T) {
	assert.Equal(t, []string{"Call me Sarah."}, SplitSentences("Call me Sarah."))
	assert.Equal(t,
		[]string{"Hi, I am Jack.", "Remember my name!", "What is DNS?"},
		SplitSentences("Hi, I am Jack.  Remember my name! What is DNS?"))
	assert.Equal(t, []string{"Version 1.2 is out"}, SplitSentences("Version 1.2 is out"))
	assert.Empty(t, SplitSentences("   "))
}

func TestHasFollowUp(t *testing.T) {
	assert.False(t, HasFollowUp("Call me Sarah."))
	assert.True(t, HasFollowUp("Hi, I am Jack. What is phishing?"))
}

func TestParseNamePolicy(t *testing.T) {
	p, err := ParseNamePolicy("")
	require.NoError(t, err)
	assert.Equal(t, NamePolicyPrefix, p)

	p, err = ParseNamePolicy("SHORT_CIRCUIT")
	require.NoError(t, err)
	assert.Equal(t, NamePolicyShortCircuit, p)

	_, err = ParseNamePolicy("ignore")
	assert.Error(t, err)
}

func TestStripGreeting(t *testing.T) {
	assert.Equal(t, "Phishing is a scam. [beep]", StripGreeting("Hi Jack, Phishing is a scam. [beep]", "Jack"))
	assert.Equal(t, "there! Phishing.", StripGreeting("Hi there! Phishing.", "Jack"))
	assert.Equal(t, "Phishing.", StripGreeting("Phishing.", "Jack"))
}

func TestAcknowledgement(t *testing.T) {
	assert.Contains(t, Acknowledgement("Sarah"), "Sarah")
}
