package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "cookery/internal/log"
	"cookery/models"
)

// New returns an in-memory sqlite database seeded with a small
// representative recipe catalog.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:cookery-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.IngredientType{},
		&models.Ingredient{},
		&models.Recipe{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

type seedIngredient struct {
	name   string
	volume string
	remark string
}

type seedRecipe struct {
	name         string
	vegetarian   bool
	servings     int
	instructions string
	ingredients  []seedIngredient
}

func catalog() []seedRecipe {
	return []seedRecipe{
		{
			name: "Mushroom Risotto", vegetarian: true, servings: 4,
			instructions: "Sweat the onion, toast the rice, ladle in stock until creamy, finish with parmesan.",
			ingredients: []seedIngredient{
				{"Onion", "1 piece", "finely diced"},
				{"Mushrooms", "400 grams", "mixed wild"},
				{"Arborio Rice", "320 grams", ""},
				{"Parmesan", "80 grams", "grated"},
			},
		},
		{
			name: "Beef Stroganoff", vegetarian: false, servings: 4,
			instructions: "Sear the beef strips, soften the onion, deglaze and simmer in sour cream.",
			ingredients: []seedIngredient{
				{"Onion", "2 pieces", ""},
				{"Beef Strips", "500 grams", ""},
				{"Sour Cream", "200 ml", ""},
			},
		},
		{
			name: "Lentil Soup", vegetarian: true, servings: 6,
			instructions: "Simmer lentils with onion and carrot until tender, season and blend half.",
			ingredients: []seedIngredient{
				{"Onion", "1 piece", ""},
				{"Red Lentils", "300 grams", "rinsed"},
				{"Carrot", "2 pieces", ""},
			},
		},
		{
			name: "Chili Con Carne", vegetarian: false, servings: 6,
			instructions: "Brown the meat with onion and bell peppers, add beans and stew slowly.",
			ingredients: []seedIngredient{
				{"Onion", "2 pieces", ""},
				{"Bell Peppers", "2 pieces", "red"},
				{"Ground Beef", "600 grams", ""},
				{"Kidney Beans", "400 grams", "drained"},
			},
		},
		{
			name: "Stuffed Peppers", vegetarian: true, servings: 2,
			instructions: "Fill halved bell peppers with rice and feta, bake in the oven until soft.",
			ingredients: []seedIngredient{
				{"Bell Peppers", "4 pieces", ""},
				{"Rice", "200 grams", "cooked"},
				{"Feta", "150 grams", "crumbled"},
			},
		},
		{
			name: "Margherita Pizza", vegetarian: true, servings: 2,
			instructions: "Stretch the dough, spread tomato sauce, top with mozzarella, bake in a hot oven.",
			ingredients: []seedIngredient{
				{"Pizza Dough", "1 ball", ""},
				{"Tomato Sauce", "150 ml", ""},
				{"Mozzarella", "125 grams", ""},
			},
		},
		{
			name: "Pancakes", vegetarian: true, servings: 4,
			instructions: "Whisk flour, milk and egg into a smooth batter, fry thin in a buttered pan.",
			ingredients: []seedIngredient{
				{"Flour", "250 grams", ""},
				{"Milk", "500 ml", ""},
				{"Egg", "2 pieces", ""},
			},
		},
		{
			name: "Greek Salad", vegetarian: true, servings: 2,
			instructions: "Chop cucumber and tomato, toss with olives and feta, dress with olive oil.",
			ingredients: []seedIngredient{
				{"Cucumber", "1 piece", ""},
				{"Tomato", "3 pieces", ""},
				{"Feta", "200 grams", "in one slab"},
				{"Olives", "100 grams", "kalamata"},
			},
		},
		{
			name: "Cottage Pie", vegetarian: false, servings: 4,
			instructions: "Fry meat, put in earthenware, cover with mash and brown in the oven.",
			ingredients: []seedIngredient{
				{"Ground Meat", "300 grams", ""},
				{"Mash", "300 grams", "enough to cover"},
			},
		},
		{
			name: "Tomato Soup", vegetarian: true, servings: 4,
			instructions: "Roast the tomatoes, blend with stock, swirl in cream and torn basil.",
			ingredients: []seedIngredient{
				{"Tomato", "1 kilogram", "ripe"},
				{"Basil", "1 bunch", ""},
				{"Cream", "100 ml", ""},
			},
		},
	}
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	types := map[string]*models.IngredientType{}
	resolveType := func(name string) (*models.IngredientType, error) {
		if existing, ok := types[name]; ok {
			return existing, nil
		}
		created := &models.IngredientType{Name: name}
		if err := db.WithContext(ctx).Create(created).Error; err != nil {
			return nil, err
		}
		types[name] = created
		return created, nil
	}

	for _, entry := range catalog() {
		recipe := models.Recipe{
			Name:         entry.name,
			IsVegetarian: entry.vegetarian,
			Servings:     entry.servings,
			Instructions: entry.instructions,
		}
		for _, ingredient := range entry.ingredients {
			ingredientType, err := resolveType(ingredient.name)
			if err != nil {
				return err
			}
			recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
				IngredientTypeID: ingredientType.ID,
				Volume:           ingredient.volume,
				Remark:           ingredient.remark,
			})
		}
		if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
