package zerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GameMessage(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "object not visible uses human message",
			err:    ObjectNotVisible("lamp"),
			expect: "I don't see any lamp here.",
		},
		{
			name:   "disambiguation needed lists candidates",
			err:    DisambiguationNeeded("key", []string{"brass key", "iron key"}),
			expect: "Which do you mean: brass key and iron key?",
		},
		{
			name:   "plain error falls back to Error()",
			err:    errors.New("boom"),
			expect: "boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, GameMessage(tc.err))
		})
	}
}

func Test_KindOf(t *testing.T) {
	assert.Equal(t, KindFileNotFound, KindOf(FileNotFound("world.zil")))
	assert.Equal(t, KindCircularDependency, KindOf(CircularDependency([]string{"a", "b", "a"})))
	assert.Equal(t, KindObjectNotAccessible, KindOf(ObjectNotAccessible("case")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func Test_CircularDependency_showsChain(t *testing.T) {
	err := CircularDependency([]string{"a.zil", "b.zil", "a.zil"})
	assert.Contains(t, err.Error(), "a.zil -> b.zil -> a.zil")
}
