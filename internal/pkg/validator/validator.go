package validator

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("rankmode", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseRankMode(fl.Field().String())
		return ok
	})
	_ = validate.RegisterValidation("entitykind", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseEntityKind(fl.Field().String())
		return ok
	})
}

// Validate - валидация структуры. Ошибки валидации возвращаются как AppError
// с перечнем невалидных полей в Details.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}

	return errorForFields(verrs).WithDetails(fields)
}

// errorForFields выбирает наиболее конкретную ошибку из таксономии InvalidInput
func errorForFields(verrs validator.ValidationErrors) *errors.AppError {
	for _, fe := range verrs {
		switch fe.Tag() {
		case "rankmode":
			return errors.ErrInvalidRankMode
		case "entitykind":
			return errors.ErrInvalidEntityKind
		}
		switch fe.Field() {
		case "Lat", "Lng":
			return errors.ErrInvalidCoordinates
		case "RadiusKm":
			return errors.ErrInvalidRadius
		}
	}
	return errors.ErrInvalidRequest
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
