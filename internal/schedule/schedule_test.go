package schedule

import "testing"

func TestSlotTimes(t *testing.T) {
	times, err := SlotTimes("2024-06-10")
	if err != nil {
		t.Fatalf("SlotTimes: %v", err)
	}
	if len(times) != SlotsPerDay {
		t.Fatalf("expected %d slots, got %d", SlotsPerDay, len(times))
	}

	want := []string{
		"2024-06-10T09:00",
		"2024-06-10T10:00",
		"2024-06-10T11:00",
		"2024-06-10T12:00",
		"2024-06-10T13:00",
		"2024-06-10T14:00",
		"2024-06-10T15:00",
		"2024-06-10T16:00",
		"2024-06-10T17:00",
	}
	for i, w := range want {
		if times[i] != w {
			t.Errorf("slot %d: expected %q, got %q", i, w, times[i])
		}
	}
}

func TestSlotTimes_InvalidDate(t *testing.T) {
	cases := []string{
		"",
		"2024-6-10",
		"2024-13-01",
		"2024-02-30",
		"10-06-2024",
		"2024-06-10T09:00",
		"not-a-date",
	}
	for _, date := range cases {
		if _, err := SlotTimes(date); err == nil {
			t.Errorf("expected error for date %q", date)
		}
	}
}
