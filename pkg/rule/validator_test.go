package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/grupovilla/gestprocesos/pkg/rule"
)

type registro struct {
	Nombre string `rule:"required"`
	Correo string `rule:"required,email"`
	Edad   int    `rule:"gte=18"`
}

func TestEngine(t *testing.T) {
	if rule.Engine() == nil {
		t.Error("Engine() returned nil")
	}
}

func TestValidateStruct(t *testing.T) {
	valid := registro{Nombre: "Ana", Correo: "ana@test.hn", Edad: 30}
	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	invalid := registro{Nombre: "", Correo: "no-es-correo", Edad: 15}
	if err := rule.ValidateStruct(invalid); err == nil {
		t.Error("Expected error for invalid struct, got nil")
	}
}

func TestErrorsExpandsFields(t *testing.T) {
	err := rule.ValidateStruct(registro{Nombre: "", Correo: "no-es-correo", Edad: 15})
	if err == nil {
		t.Fatal("Expected validation failure")
	}

	fields := rule.Errors(err)
	if len(fields) != 3 {
		t.Fatalf("Expected 3 field errors, got %v", fields)
	}

	if _, ok := fields["nombre"]; !ok {
		t.Errorf("Expected lowercase field keys, got %v", fields)
	}

	if fields["edad"] != "failed on gte=18" {
		t.Errorf("Expected parameterized message for edad, got %q", fields["edad"])
	}

	if rule.Errors(nil) != nil {
		t.Error("Expected nil map for nil error")
	}
}

func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("ana@test.hn", "required,email"); err != nil {
		t.Errorf("Expected no error for valid email, got %v", err)
	}

	if err := rule.ValidateVar("no-es-correo", "required,email"); err == nil {
		t.Error("Expected error for invalid email, got nil")
	}
}

func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("par", func(fl validator.FieldLevel) bool {
		return fl.Field().Len()%2 == 0
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	if err := rule.ValidateVar("abcd", "par"); err != nil {
		t.Errorf("Expected no error for even length, got %v", err)
	}

	if err := rule.ValidateVar("abc", "par"); err == nil {
		t.Error("Expected error for odd length, got nil")
	}
}

func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("clave", "required,min=8")

	if err := rule.ValidateVar("clave-larga", "clave"); err != nil {
		t.Errorf("Expected no error for valid alias value, got %v", err)
	}

	if err := rule.ValidateVar("corta", "clave"); err == nil {
		t.Error("Expected error for short alias value, got nil")
	}
}
