package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"eventhub/data/models"
)

func (sr *SqlRepo) GetUserByID(id int64) (models.User, error) {
	model, err := sr.GetModelByID(&models.User{}, id)
	if err != nil {
		return models.User{}, err
	}

	user, ok := model.(*models.User)
	if !ok {
		return models.User{}, fmt.Errorf("type assertion to User failed")
	}

	return *user, nil
}

func (sr *SqlRepo) GetUserByUsername(username string) (models.User, error) {
	var u models.User
	row := sr.DB.QueryRow("SELECT * FROM users WHERE username = $1", username)
	if err := models.ScanRowToModel(&u, row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (sr *SqlRepo) UsernameTaken(username string) (bool, error) {
	var exists bool
	err := sr.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %v", err)
	}
	return exists, nil
}

// ActivateUser flips the is_active flag. Activation tokens become invalid
// once the flag is set, since the signing key is derived from it.
func (sr *SqlRepo) ActivateUser(id int64) error {
	res, err := sr.DB.Exec("UPDATE users SET is_active = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error activating user %d: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRoles returns the names of the groups the user belongs to.
func (sr *SqlRepo) GetRoles(userID int64) ([]string, error) {
	rows, err := sr.DB.Query(`SELECT g.name FROM groups g
		JOIN user_groups ug ON ug.group_id = g.id
		WHERE ug.user_id = $1
		ORDER BY g.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying roles: %v", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}

// AssignRole clears the user's group memberships and assigns the single named
// group, creating it if missing. Mirrors the admin "assign role" action where
// a user holds exactly one meaningful role.
func (sr *SqlRepo) AssignRole(userID int64, role string) error {
	groupID, err := sr.EnsureGroup(role)
	if err != nil {
		return err
	}

	tx, err := sr.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM user_groups WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("error clearing groups: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)", userID, groupID); err != nil {
		return fmt.Errorf("error assigning group: %v", err)
	}

	return tx.Commit()
}

// EnsureGroup returns the id of the named group, creating it if it does not
// exist yet.
func (sr *SqlRepo) EnsureGroup(name string) (int64, error) {
	var id int64
	err := sr.DB.QueryRow(`INSERT INTO groups (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error ensuring group %q: %v", name, err)
	}
	return id, nil
}

func (sr *SqlRepo) ListUsers() ([]models.UserAccount, error) {
	rows, err := sr.DB.Query("SELECT * FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error querying users: %v", err)
	}
	defer rows.Close()

	slice, err := models.ScanRowsToSliceOfModels(models.User{}, rows, 50)
	if err != nil {
		return nil, err
	}
	users := *(slice.(*[]models.User))

	accounts := make([]models.UserAccount, 0, len(users))
	for _, u := range users {
		roles, err := sr.GetRoles(u.ID)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, models.UserAccount{User: u, Roles: roles})
	}
	return accounts, nil
}

func (sr *SqlRepo) ListGroups() ([]models.GroupInfo, error) {
	rows, err := sr.DB.Query(`SELECT g.id, g.name, COUNT(ug.id)
		FROM groups g
		LEFT JOIN user_groups ug ON ug.group_id = g.id
		GROUP BY g.id
		ORDER BY g.name`)
	if err != nil {
		return nil, fmt.Errorf("error querying groups: %v", err)
	}
	defer rows.Close()

	var groups []models.GroupInfo
	for rows.Next() {
		var g models.GroupInfo
		if err := rows.Scan(&g.ID, &g.Name, &g.UserCount); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
