package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// SocialStyle is one of the four client personality categories a plan is built around.
// The zero value is StyleUnknown and never passes validation.
type SocialStyle uint8

const (
	StyleUnknown SocialStyle = iota
	StyleDriving
	StyleAnalytical
	StyleAmiable
	StyleExpressive
)

// StyleProfile bundles the static display data for a social style.
// Tip may contain **bold** markers; renderers strip them.
type StyleProfile struct {
	Style  SocialStyle `json:"name"`
	Icon   string      `json:"icon"`
	Accent string      `json:"accent"`
	Focus  string      `json:"focus"`
	Tip    string      `json:"tip"`
}

var styleNames = [...]string{
	StyleUnknown:    "",
	StyleDriving:    "Driving",
	StyleAnalytical: "Analytical",
	StyleAmiable:    "Amiable",
	StyleExpressive: "Expressive",
}

var styleProfiles = [...]StyleProfile{
	StyleDriving: {
		Style:  StyleDriving,
		Icon:   "🦁",
		Accent: "red",
		Focus:  "เน้นผลลัพธ์",
		Tip:    "**กลยุทธ์:** เข้าประเด็นเร็ว, เน้นผลลัพธ์ (กำไร, ประสิทธิภาพ), เสนอทางเลือกให้เขาตัดสินใจ, อย่าเวิ่นเว้อ",
	},
	StyleAnalytical: {
		Style:  StyleAnalytical,
		Icon:   "🦉",
		Accent: "blue",
		Focus:  "เน้นข้อมูล",
		Tip:    "**กลยุทธ์:** เตรียมข้อมูลแน่น, อ้างอิงตัวเลข/Clinical Data, พูดเป็นขั้นเป็นตอน, ให้เวลาเขาคิด, อย่าเร่งรัด",
	},
	StyleAmiable: {
		Style:  StyleAmiable,
		Icon:   "🕊️",
		Accent: "green",
		Focus:  "เน้นความสัมพันธ์",
		Tip:    "**กลยุทธ์:** สร้างความสัมพันธ์ก่อน, เน้นความปลอดภัย/ความน่าเชื่อถือ, ให้การรับประกัน (Assurance), อย่ากดดัน",
	},
	StyleExpressive: {
		Style:  StyleExpressive,
		Icon:   "🎉",
		Accent: "yellow",
		Focus:  "เน้นการสื่อสาร",
		Tip:    "**กลยุทธ์:** ใช้พลังงานสูง, เล่า Story ที่น่าตื่นเต้น, อ้างอิง KOL, ให้เขาเป็นจุดเด่น, อย่าพูดแต่ข้อมูลแห้งๆ",
	},
}

// ParseSocialStyle maps a style name to its variant. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseSocialStyle(name string) (SocialStyle, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return StyleUnknown, false
	}
	for i := StyleDriving; i <= StyleExpressive; i++ {
		if strings.EqualFold(styleNames[i], name) {
			return i, true
		}
	}
	return StyleUnknown, false
}

// SocialStyles returns all valid styles in display order.
func SocialStyles() []SocialStyle {
	return []SocialStyle{StyleDriving, StyleAnalytical, StyleAmiable, StyleExpressive}
}

func (s SocialStyle) Valid() bool {
	return s >= StyleDriving && s <= StyleExpressive
}

func (s SocialStyle) String() string {
	if !s.Valid() {
		return ""
	}
	return styleNames[s]
}

// Profile returns the static profile of a valid style.
func (s SocialStyle) Profile() (StyleProfile, bool) {
	if !s.Valid() {
		return StyleProfile{}, false
	}
	return styleProfiles[s], true
}

// Profiles returns the profiles of all valid styles in display order.
func Profiles() []StyleProfile {
	out := make([]StyleProfile, 0, len(styleProfiles)-1)
	for _, s := range SocialStyles() {
		out = append(out, styleProfiles[s])
	}
	return out
}

// MarshalText encodes the style as its name; StyleUnknown encodes as "".
func (s SocialStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText never fails: unrecognised names decode to StyleUnknown so that
// exports can degrade to "N/A" and saves fail validation instead of parsing.
func (s *SocialStyle) UnmarshalText(text []byte) error {
	*s, _ = ParseSocialStyle(string(text))
	return nil
}

// Scan implements sql.Scanner.
func (s *SocialStyle) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StyleUnknown
	case string:
		*s, _ = ParseSocialStyle(v)
	case []byte:
		*s, _ = ParseSocialStyle(string(v))
	default:
		return fmt.Errorf("cannot scan %T into SocialStyle", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (s SocialStyle) Value() (driver.Value, error) {
	return s.String(), nil
}
