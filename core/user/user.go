// Package user owns the registered user list and the current session. The
// flow is deliberately simple: register, login, logout, at most one active
// session. Validation failures come back as Result values, never as errors;
// errors are reserved for the persistence layer.
//
// Unlike the storefront this was modeled on, passwords are bcrypt-hashed
// before they reach storage. Plaintext records were a defect there, not a
// behavior worth keeping.
package user

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	usersKey   = "users"
	currentKey = "currentUser"
)

// User is a registered account as persisted. Orders stays empty for now;
// checkout does not write order history yet.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Joined       time.Time `json:"joined"`
	Orders       []string  `json:"orders"`
}

// Info is the client-facing shape of an account, without credentials.
type Info struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Joined time.Time `json:"joined"`
}

func (u User) Info() Info {
	return Info{ID: u.ID, Name: u.Name, Email: u.Email, Joined: u.Joined}
}

// Result is the outcome of an account operation. Rejections are values of
// this type with Success false, matching the structured negative results the
// account flow reports to users.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Storage is the slice of the persistence layer the account store needs.
type Storage interface {
	Save(key string, val any) error
	Load(key string, val any) (bool, error)
	Delete(key string) error
}

type Store struct {
	storage Storage

	mu      sync.Mutex
	users   []User
	current *User
	lastID  int64
}

// NewStore loads the persisted user list and session snapshot, if any.
func NewStore(st Storage) (*Store, error) {
	s := &Store{storage: st}

	if _, err := st.Load(usersKey, &s.users); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for _, u := range s.users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}

	var current User
	ok, err := st.Load(currentKey, &current)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if ok {
		s.current = &current
	}
	return s, nil
}

// Register creates an account and immediately establishes a session through
// the login path. A duplicate email is a rejection, not an error.
func (s *Store) Register(name, email, password string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return Result{Success: false, Message: "Email already registered"}, nil
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, fmt.Errorf("hashing password: %w", err)
	}

	// Time-based id; bumped when two registrations land on the same
	// millisecond.
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	s.users = append(s.users, User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Joined:       time.Now().UTC(),
		Orders:       []string{},
	})

	if err := s.storage.Save(usersKey, s.users); err != nil {
		return Result{}, err
	}

	if _, err := s.login(email, password); err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: "Registration successful"}, nil
}

// Login matches credentials against the registered users and establishes the
// session on success. The failure message never says which field was wrong.
func (s *Store) Login(email, password string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.login(email, password)
}

func (s *Store) login(email, password string) (Result, error) {
	for i := range s.users {
		u := s.users[i]
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}

		s.current = &u
		if err := s.storage.Save(currentKey, u); err != nil {
			return Result{}, err
		}
		return Result{Success: true, Message: "Login successful"}, nil
	}

	return Result{Success: false, Message: "Invalid email or password"}, nil
}

// Logout clears the session. It always succeeds, logged in or not.
func (s *Store) Logout() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Delete(currentKey); err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: "Logged out successfully"}, nil
}

// Current returns the session's user, if one is logged in.
func (s *Store) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}
