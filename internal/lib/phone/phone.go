// Package phone проверяет и нормализует колумбийские номера телефонов.
// Допустимы номера из десяти цифр, опционально с префиксом 57 или +57;
// нормализованная форма всегда +57XXXXXXXXXX.
package phone

import "strings"

func clean(raw string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	s := r.Replace(raw)
	s = strings.TrimPrefix(s, "+57")
	s = strings.TrimPrefix(s, "57")
	return s
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Validate сообщает, является ли строка корректным колумбийским номером.
func Validate(raw string) bool {
	s := clean(raw)
	return len(s) == 10 && isDigits(s)
}

// Format приводит номер к виду +57XXXXXXXXXX.
// Предполагается, что номер уже прошел Validate.
func Format(raw string) string {
	return "+57" + clean(raw)
}
