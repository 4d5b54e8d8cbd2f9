package fakeuserrepo

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/users"
	"github.com/pkg/errors"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users       map[string]*users.User
	usernameIDs map[string]string // username to user id
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[string]*users.User),
		usernameIDs: make(map[string]string),
	}
}

// DemoAccount is a username/password/role triple shown on the login screen.
type DemoAccount struct {
	Username string
	Password string
	Role     users.Role
}

var DemoAccounts = []DemoAccount{
	{Username: "admin", Password: "admin123", Role: users.RoleAdmin},
	{Username: "sales1", Password: "sales123", Role: users.RoleSales},
	{Username: "tech1", Password: "tech123", Role: users.RoleTech},
	{Username: "customer1", Password: "customer123", Role: users.RoleCustomer},
}

// NewDemoUserRepo returns a repo seeded with DemoAccounts.
func NewDemoUserRepo() (*FakeUserRepo, error) {
	ur := NewFakeUserRepo()
	for _, a := range DemoAccounts {
		hash, err := users.HashPassword(a.Password)
		if err != nil {
			return nil, errors.Wrap(err, "[NewDemoUserRepo] HashPassword")
		}
		if err := ur.Upsert(&users.User{Username: a.Username, PasswordHash: hash, Role: a.Role}); err != nil {
			return nil, errors.Wrap(err, "[NewDemoUserRepo] Upsert")
		}
	}
	return ur, nil
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	if user.Username == "" {
		return errors.New("username is required")
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
	ur.usernameIDs[user.Username] = user.ID
	return nil
}

func (ur *FakeUserRepo) Delete(username string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	userID, ok := ur.usernameIDs[username]
	if !ok {
		return poserrors.ErrUserNotFound
	}
	delete(ur.usernameIDs, username)
	delete(ur.users, userID)
	return nil
}

func (ur *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIDs[username]
	if !ok {
		return nil, poserrors.ErrUserNotFound
	}
	return ur.users[id], nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, poserrors.ErrUserNotFound
	}
	return u, nil
}

func (ur *FakeUserRepo) List(offset, limit int) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for _, v := range ur.users {
		userList = append(userList, v)
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].Username < userList[j].Username
	})

	if offset >= len(userList) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(userList) {
		end = len(userList)
	}
	return userList[offset:end], nil
}

func (ur *FakeUserRepo) SetBlocked(username string, blocked bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.usernameIDs[username]
	if !ok {
		return poserrors.ErrUserNotFound
	}
	ur.users[id].Blocked = blocked
	return nil
}
