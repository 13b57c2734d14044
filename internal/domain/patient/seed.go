package patient

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Seed value pools. Kept small on purpose: seeded data is for local
// development and chart demos, not realism.
var (
	seedFirstNames = []string{
		"Alice", "Bob", "Cara", "Daniel", "Elena", "Frank", "Grace", "Hassan",
		"Ingrid", "James", "Keiko", "Liam", "Maria", "Noah", "Olivia", "Pavel",
		"Quinn", "Rosa", "Samuel", "Tara",
	}
	seedLastNames = []string{
		"Smith", "Jones", "Lee", "Garcia", "Chen", "Patel", "Kim", "Novak",
		"Okafor", "Silva", "Brown", "Davis", "Martin", "Lopez", "Wilson",
		"Anderson", "Thomas", "Moore", "Jackson", "White",
	}
	seedAllergies = []string{
		"Penicillin", "Latex", "Peanuts", "Shellfish", "Soy", "Dairy", "Eggs",
		"Gluten", "Fish", "Tree Nuts",
	}
	seedMedications = []string{
		"Lisinopril", "Albuterol", "Metformin", "Sumatriptan", "Ibuprofen",
		"Cetirizine", "Sertraline", "Atorvastatin", "Hydrocortisone",
	}
	seedDosages = []string{
		"10mg", "2 puffs", "500mg", "50mg", "200mg", "1 tablet", "81mg", "400mg",
	}
	seedFrequencies = []string{
		"Once daily", "Twice daily", "As needed", "With meals", "Nightly", "At bedtime",
	}
	seedConditions = []string{
		"Hypertension", "Asthma", "Diabetes", "Migraines", "Arthritis",
		"Anxiety", "Celiac Disease", "High Cholesterol", "Eczema", "Sleep Apnea",
		"COPD", "Epilepsy", "Back Pain", "Heart Disease",
	}
	seedBloodTypes = []BloodType{
		BloodAPos, BloodANeg, BloodBPos, BloodBNeg,
		BloodABPos, BloodABNeg, BloodOPos, BloodONeg,
	}
	seedProviders = []string{
		"Aetna", "Blue Cross", "Cigna", "UnitedHealth", "Kaiser", "Humana", "",
	}
	seedRelationships = []string{
		"Spouse", "Mother", "Father", "Brother", "Sister", "Daughter", "Son",
	}
	seedDocNames = []string{
		"Lab Results.pdf", "X-ray.png", "Prescription.pdf", "MRI Report.pdf",
		"Discharge Summary.pdf", "Allergy Test.pdf",
	}
	seedDocTypes = []DocumentType{DocTestResult, DocMedicalRecord, DocOther}
)

// GenerateSeed produces n deterministic mock patients for the given seed.
// Records have no id or audit timestamps; the backing store assigns them.
func GenerateSeed(n int, seed int64) []*Patient {
	rng := rand.New(rand.NewSource(seed))
	today := time.Now().UTC()

	out := make([]*Patient, 0, n)
	for i := 0; i < n; i++ {
		first := pick(rng, seedFirstNames)
		last := pick(rng, seedLastNames)
		birthYear := 1940 + rng.Intn(71) // 1940..2010
		dob := NewDate(birthYear, time.Month(1+rng.Intn(12)), 1+rng.Intn(28))

		gender := GenderMale
		if rng.Intn(2) == 1 {
			gender = GenderFemale
		}

		lastVisit := DateOf(today.AddDate(0, 0, -rng.Intn(800)))

		p := &Patient{
			FirstName:   first,
			LastName:    last,
			DateOfBirth: dob,
			Gender:      gender,
			Email:       fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			Phone:       fmt.Sprintf("555-%04d", rng.Intn(10000)),
			Address: Address{
				Street:  fmt.Sprintf("%d Main St", 1+rng.Intn(999)),
				City:    "Springfield",
				State:   "IL",
				ZipCode: fmt.Sprintf("%05d", 10000+rng.Intn(89999)),
				Country: "USA",
			},
			EmergencyContact: EmergencyContact{
				Name:         pick(rng, seedFirstNames) + " " + last,
				Relationship: pick(rng, seedRelationships),
				Phone:        fmt.Sprintf("555-%04d", rng.Intn(10000)),
			},
			MedicalInfo: MedicalInfo{
				Allergies: pickSome(rng, seedAllergies, rng.Intn(3)),
				CurrentMedications: []Medication{{
					ID:           uuid.NewString(),
					Name:         pick(rng, seedMedications),
					Dosage:       pick(rng, seedDosages),
					Frequency:    pick(rng, seedFrequencies),
					PrescribedBy: "Dr. " + pick(rng, seedLastNames),
					StartDate:    DateOf(today.AddDate(-rng.Intn(5), 0, 0)),
					IsActive:     rng.Intn(2) == 1,
				}},
				Conditions: pickSome(rng, seedConditions, rng.Intn(3)),
				BloodType:  seedBloodTypes[rng.Intn(len(seedBloodTypes))],
				LastVisit:  lastVisit,
				Status:     Statuses[rng.Intn(len(Statuses))],
			},
			Insurance: InsuranceInfo{
				Provider:      pick(rng, seedProviders),
				PolicyNumber:  fmt.Sprintf("POL%05d", rng.Intn(100000)),
				EffectiveDate: DateOf(today.AddDate(-1-rng.Intn(4), 0, 0)),
				Copay:         10 + rng.Intn(31),
				Deductible:    500 + rng.Intn(1501),
			},
			Documents: []Document{{
				ID:         uuid.NewString(),
				Type:       seedDocTypes[rng.Intn(len(seedDocTypes))],
				Name:       pick(rng, seedDocNames),
				UploadDate: DateOf(today.AddDate(0, -rng.Intn(24), 0)),
				FileSize:   int64(10000 + rng.Intn(490000)),
				MimeType:   "application/pdf",
				URL:        "/docs/" + uuid.NewString() + ".pdf",
			}},
		}
		out = append(out, p)
	}
	return out
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func pickSome(rng *rand.Rand, pool []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	idx := rng.Perm(len(pool))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}
