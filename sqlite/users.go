package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmarins/taskdeck"
)

const SelectUsers = "SELECT id, email, password FROM users"

type userEntity struct {
	ID       int64
	Email    string
	Password string
}

// userRepo
type userRepo struct {
	dbGetter txStdLib.DBGetter
	l        taskdeck.Logger
}

var _ taskdeck.UserRepo = (*userRepo)(nil)

func NewUserRepo(dbGetter txStdLib.DBGetter, logger taskdeck.Logger) taskdeck.UserRepo {
	return &userRepo{
		l:        logger,
		dbGetter: dbGetter,
	}
}

// InsertUser stores a new user with a bcrypt hash of the password. A
// duplicate email maps to taskdeck.ErrEmailTaken.
func (r *userRepo) InsertUser(ctx context.Context, email, password string) (taskdeck.ExistingUserRecord, error) {
	if email == "" {
		return taskdeck.ExistingUserRecord{}, fmt.Errorf("provide required field 'Email'")
	}
	if password == "" {
		return taskdeck.ExistingUserRecord{}, fmt.Errorf("provide required field 'Password'")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return taskdeck.ExistingUserRecord{}, err
	}

	db := r.dbGetter(ctx)
	query := "INSERT INTO users (email, password) VALUES (?,?)"
	r.l.Debug("creating user", "query", query, "email", email)
	result, err := db.ExecContext(ctx, query, email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return taskdeck.ExistingUserRecord{}, taskdeck.ErrEmailTaken
		}
		return taskdeck.ExistingUserRecord{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return taskdeck.ExistingUserRecord{}, err
	}

	return taskdeck.ExistingUserRecord{
		ID: int(insertedID),
		UserRecord: taskdeck.UserRecord{
			Email: email,
		},
	}, nil
}

// Authenticate returns the matching user record. An unknown email and a
// wrong password both come back as taskdeck.ErrInvalidCredentials.
func (r *userRepo) Authenticate(ctx context.Context, email, password string) (taskdeck.ExistingUserRecord, error) {
	db := r.dbGetter(ctx)
	row := db.QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE email=?", SelectUsers), email,
	)

	var e userEntity
	if err := row.Scan(&e.ID, &e.Email, &e.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return taskdeck.ExistingUserRecord{}, taskdeck.ErrInvalidCredentials
		}
		return taskdeck.ExistingUserRecord{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)); err != nil {
		return taskdeck.ExistingUserRecord{}, taskdeck.ErrInvalidCredentials
	}

	return taskdeck.ExistingUserRecord{
		ID: int(e.ID),
		UserRecord: taskdeck.UserRecord{
			Email: e.Email,
		},
	}, nil
}
