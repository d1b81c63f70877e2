package repository

import (
	"fmt"

	"eventhub/data/models"
)

func (sr *SqlRepo) GetCategoryByID(id int64) (models.Category, error) {
	model, err := sr.GetModelByID(&models.Category{}, id)
	if err != nil {
		return models.Category{}, err
	}

	category, ok := model.(*models.Category)
	if !ok {
		return models.Category{}, fmt.Errorf("type assertion to Category failed")
	}

	return *category, nil
}

// ListCategories returns all categories annotated with their event counts,
// ordered by name.
func (sr *SqlRepo) ListCategories() ([]models.CategoryInfo, error) {
	rows, err := sr.DB.Query(`SELECT c.id, c.name, c.description, COUNT(e.id)
		FROM categories c
		LEFT JOIN events e ON e.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("error querying categories: %v", err)
	}
	defer rows.Close()

	var categories []models.CategoryInfo
	for rows.Next() {
		var c models.CategoryInfo
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.EventCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
