package handlers

import (
	"Recipe-Share-Backend/domain"
	"github.com/gofiber/fiber/v2"
	"strconv"
	"strings"
)

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// formValues returns every value posted under key and whether the key was
// present at all, for both urlencoded and multipart bodies.
func formValues(c *fiber.Ctx, key string) ([]string, bool) {
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, false
		}
		values, ok := form.Value[key]
		return values, ok
	}

	args := c.Request().PostArgs()
	if !args.Has(key) {
		return nil, false
	}
	var values []string
	for _, v := range args.PeekMulti(key) {
		values = append(values, string(v))
	}
	return values, true
}

func formValue(c *fiber.Ctx, key string) string {
	values, _ := formValues(c, key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func formInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(formValue(c, key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidTime
	}
	return n, nil
}

// parseRecipeForm reads the create and edit forms. Tags may be posted as
// tags[] or tags.
func parseRecipeForm(c *fiber.Ctx) (domain.RecipeForm, error) {
	prepTime, err := formInt(c, "prep_time")
	if err != nil {
		return domain.RecipeForm{}, err
	}
	cookTime, err := formInt(c, "cook_time")
	if err != nil {
		return domain.RecipeForm{}, err
	}

	ingredients, ingredientsSet := formValues(c, "ingredients")
	form := domain.RecipeForm{
		Name:           formValue(c, "recipe_name"),
		Description:    formValue(c, "description"),
		CuisineID:      formValue(c, "cuisine_type"),
		PrepTime:       prepTime,
		CookTime:       cookTime,
		Instructions:   formValue(c, "instructions"),
		IngredientsSet: ingredientsSet,
	}
	if len(ingredients) > 0 {
		form.Ingredients = ingredients[0]
	}

	for _, key := range []string{"tags[]", "tags"} {
		values, _ := formValues(c, key)
		form.Tags = append(form.Tags, values...)
	}

	if isMultipart(c) {
		multipart, err := c.MultipartForm()
		if err != nil {
			return domain.RecipeForm{}, err
		}
		if files := multipart.File["recipe_image"]; len(files) > 0 && files[0].Filename != "" && files[0].Size > 0 {
			form.Image = files[0]
		}
	}
	return form, nil
}
