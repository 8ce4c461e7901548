package yoga_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		first   string
		last    string
		hash    string
		wantErr bool
	}{
		{name: "valid", email: "yoga@studio.com", first: "Jane", last: "Doe", hash: "$2a$hash"},
		{name: "missing email", email: "", first: "Jane", last: "Doe", hash: "$2a$hash", wantErr: true},
		{name: "invalid email", email: "not-an-email", first: "Jane", last: "Doe", hash: "$2a$hash", wantErr: true},
		{name: "missing first name", email: "yoga@studio.com", last: "Doe", hash: "$2a$hash", wantErr: true},
		{name: "missing last name", email: "yoga@studio.com", first: "Jane", hash: "$2a$hash", wantErr: true},
		{name: "missing password", email: "yoga@studio.com", first: "Jane", last: "Doe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := yoga.NewUser(tt.email, tt.first, tt.last, tt.hash, false)
			if tt.wantErr {
				assert.Nil(t, u)
				assert.True(t, yoga.IsBadRequest(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, u.Email)
			assert.False(t, u.Admin)
		})
	}
}

func TestNewTeacher(t *testing.T) {
	teacher, err := yoga.NewTeacher("Margot", "Delahaye")
	require.NoError(t, err)
	assert.Equal(t, "Margot", teacher.FirstName)

	_, err = yoga.NewTeacher("", "Delahaye")
	assert.True(t, yoga.IsBadRequest(err))
}

func TestNewSession(t *testing.T) {
	date := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	teacher := &yoga.Teacher{ID: 2}

	t.Run("valid", func(t *testing.T) {
		s, err := yoga.NewSession("Morning flow", "Gentle vinyasa", date, teacher)
		require.NoError(t, err)
		require.NotNil(t, s.TeacherID)
		assert.Equal(t, int64(2), *s.TeacherID)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := yoga.NewSession(strings.Repeat("a", yoga.MaxSessionNameLength+1), "desc", date, nil)
		assert.True(t, yoga.IsBadRequest(err))
	})

	t.Run("description too long", func(t *testing.T) {
		_, err := yoga.NewSession("name", strings.Repeat("a", yoga.MaxSessionDescriptionLength+1), date, nil)
		assert.True(t, yoga.IsBadRequest(err))
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := yoga.NewSession("name", "desc", time.Time{}, nil)
		assert.True(t, yoga.IsBadRequest(err))
	})

	t.Run("without teacher", func(t *testing.T) {
		s, err := yoga.NewSession("name", "desc", date, nil)
		require.NoError(t, err)
		assert.Nil(t, s.TeacherID)
		assert.Nil(t, s.Teacher)
	})
}

func TestEqualityByID(t *testing.T) {
	assert.True(t, (&yoga.User{ID: 1, Email: "a@b.com"}).Equal(&yoga.User{ID: 1, Email: "c@d.com"}))
	assert.False(t, (&yoga.User{ID: 1}).Equal(&yoga.User{ID: 2}))
	assert.False(t, (&yoga.User{ID: 1}).Equal(nil))

	assert.True(t, (&yoga.Teacher{ID: 3, FirstName: "a"}).Equal(&yoga.Teacher{ID: 3, FirstName: "b"}))
	assert.True(t, (&yoga.Session{ID: 4, Name: "a"}).Equal(&yoga.Session{ID: 4, Name: "b"}))
	assert.False(t, (&yoga.Session{ID: 4}).Equal(&yoga.Session{ID: 5}))
}

func TestSessionParticipants(t *testing.T) {
	s := &yoga.Session{ID: 1}
	u7 := &yoga.User{ID: 7}
	u8 := &yoga.User{ID: 8}

	assert.True(t, s.AddParticipant(u7))
	assert.True(t, s.AddParticipant(u8))
	assert.False(t, s.AddParticipant(&yoga.User{ID: 7}))
	assert.False(t, s.AddParticipant(nil))
	assert.Equal(t, []int64{7, 8}, s.ParticipantIDs())

	assert.True(t, s.RemoveParticipant(7))
	assert.False(t, s.RemoveParticipant(7))
	assert.Equal(t, []int64{8}, s.ParticipantIDs())
	assert.False(t, s.HasParticipant(7))
	assert.True(t, s.HasParticipant(8))
}

func TestSessionString(t *testing.T) {
	s := &yoga.Session{ID: 1, Name: "Morning flow", Description: "Gentle vinyasa"}
	out := s.String()

	assert.Contains(t, out, "id=1")
	assert.Contains(t, out, "name=Morning flow")
	assert.Contains(t, out, "description=Gentle vinyasa")
	assert.Contains(t, out, "teacher_id=null")
}

func TestLengthBoundsCountCharacters(t *testing.T) {
	date := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("session name", func(t *testing.T) {
		_, err := yoga.NewSession(strings.Repeat("é", yoga.MaxSessionNameLength), "Gentle vinyasa", date, nil)
		assert.NoError(t, err)

		_, err = yoga.NewSession(strings.Repeat("é", yoga.MaxSessionNameLength+1), "Gentle vinyasa", date, nil)
		assert.True(t, yoga.IsBadRequest(err))
	})

	t.Run("session description", func(t *testing.T) {
		_, err := yoga.NewSession("Flow", strings.Repeat("ü", yoga.MaxSessionDescriptionLength), date, nil)
		assert.NoError(t, err)

		_, err = yoga.NewSession("Flow", strings.Repeat("ü", yoga.MaxSessionDescriptionLength+1), date, nil)
		assert.True(t, yoga.IsBadRequest(err))
	})

	t.Run("session payload", func(t *testing.T) {
		dto := yoga.SessionDTO{Name: strings.Repeat("é", 50), Description: "Gentle vinyasa", Date: &date}
		assert.NoError(t, dto.Validate())

		dto.Name = strings.Repeat("é", 51)
		assert.True(t, yoga.IsBadRequest(dto.Validate()))
	})

	t.Run("signup names", func(t *testing.T) {
		req := yoga.SignupRequest{
			Email:     "yoga@studio.com",
			FirstName: strings.Repeat("é", 20),
			LastName:  "Zoë",
			Password:  "pässwörd",
		}
		assert.NoError(t, req.Validate())

		req.FirstName = strings.Repeat("é", 21)
		assert.True(t, yoga.IsBadRequest(req.Validate()))
	})

	t.Run("user payload", func(t *testing.T) {
		dto := yoga.UserDTO{Email: "yoga@studio.com", FirstName: strings.Repeat("ç", 20), LastName: "Doe"}
		assert.NoError(t, dto.Validate())

		dto.FirstName = strings.Repeat("ç", 21)
		assert.True(t, yoga.IsBadRequest(dto.Validate()))
	})
}
