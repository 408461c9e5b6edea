package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

func validNewStudent() NewStudent {
	return NewStudent{
		Name:               "John Doe",
		Email:              "John.Doe@Cambridge.edu.in",
		Password:           "student123",
		RegistrationNumber: "1cr21cs101",
		Department:         "Computer Science",
		Year:               3,
		Semester:           5,
		TotalFees:          dec(150000),
	}
}

func TestCreateStudent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	hasher := &countingHasher{}
	prov := NewProvisioner(store, hasher, "cambridge.edu.in")

	acc, err := prov.CreateStudent(ctx, validNewStudent())
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if acc.Role != accountModel.RoleStudent {
		t.Errorf("role: got %s, want student", acc.Role)
	}
	if acc.Email != "john.doe@cambridge.edu.in" {
		t.Errorf("email: got %s", acc.Email)
	}
	if acc.RegistrationNumber == nil || *acc.RegistrationNumber != "1CR21CS101" {
		t.Errorf("usn: got %v", acc.RegistrationNumber)
	}
	if acc.Password != "hashed:student123" || hasher.calls != 1 {
		t.Errorf("password not hashed once: %q (%d calls)", acc.Password, hasher.calls)
	}

	stored, err := store.FindAccountByEmail(ctx, "JOHN.DOE@cambridge.edu.in")
	if err != nil {
		t.Fatalf("FindAccountByEmail: %v", err)
	}
	assertDecimal(t, "totalFees", stored.TotalFees, 150000)
}

func TestCreateStudentRejects(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*NewStudent)
		want   *FeeError
	}{
		{name: "missing name", mutate: func(in *NewStudent) { in.Name = "" }, want: ErrValidation},
		{name: "missing usn", mutate: func(in *NewStudent) { in.RegistrationNumber = "  " }, want: ErrValidation},
		{name: "short password", mutate: func(in *NewStudent) { in.Password = "abc" }, want: ErrValidation},
		{name: "year out of range", mutate: func(in *NewStudent) { in.Year = 5 }, want: ErrValidation},
		{name: "semester out of range", mutate: func(in *NewStudent) { in.Semester = 9 }, want: ErrValidation},
		{name: "negative fees", mutate: func(in *NewStudent) { in.TotalFees = dec(-1) }, want: ErrValidation},
		{name: "sub-cent fees", mutate: func(in *NewStudent) { in.TotalFees = decimal.RequireFromString("1000.005") }, want: ErrValidation},
		{name: "other domain", mutate: func(in *NewStudent) { in.Email = "john@gmail.com" }, want: ErrDomainMismatch},
		{name: "lookalike domain", mutate: func(in *NewStudent) { in.Email = "john@notcambridge.edu.in" }, want: ErrDomainMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			hasher := &countingHasher{}
			prov := NewProvisioner(store, hasher, "cambridge.edu.in")

			in := validNewStudent()
			tt.mutate(&in)
			_, err := prov.CreateStudent(ctx, in)
			assertKind(t, err, tt.want)

			if n, _ := store.CountAccountsByRole(ctx, accountModel.RoleStudent); n != 0 {
				t.Errorf("account written on rejected create")
			}
			if hasher.calls != 0 {
				t.Errorf("hasher called on rejected create")
			}
		})
	}
}

func TestCreateStudentValidationFields(t *testing.T) {
	prov := NewProvisioner(newTestStore(), &countingHasher{}, "cambridge.edu.in")
	in := validNewStudent()
	in.RegistrationNumber = ""
	in.Department = ""

	_, err := prov.CreateStudent(context.Background(), in)
	fe, ok := AsFeeError(err)
	if !ok {
		t.Fatalf("expected *FeeError, got %v", err)
	}
	if fe.Message != "Please provide all required fields" {
		t.Errorf("message: got %q", fe.Message)
	}
	for _, field := range []string{"usn", "department"} {
		if _, ok := fe.Fields[field]; !ok {
			t.Errorf("missing field error for %s: %v", field, fe.Fields)
		}
	}
}

func TestCreateStudentDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	prov := NewProvisioner(store, &countingHasher{}, "@cambridge.edu.in")

	if _, err := prov.CreateStudent(ctx, validNewStudent()); err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	sameEmail := validNewStudent()
	sameEmail.RegistrationNumber = "1CR21CS999"
	_, err := prov.CreateStudent(ctx, sameEmail)
	assertKind(t, err, ErrDuplicateEmail)

	sameUSN := validNewStudent()
	sameUSN.Email = "other@cambridge.edu.in"
	sameUSN.RegistrationNumber = " 1Cr21Cs101 "
	_, err = prov.CreateStudent(ctx, sameUSN)
	assertKind(t, err, ErrDuplicateRegistrationNumber)

	if n, _ := store.CountAccountsByRole(ctx, accountModel.RoleStudent); n != 1 {
		t.Errorf("students: got %d, want 1", n)
	}
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	student := seedStudent(t, store, "1CR21CS107", 1000)
	prov := NewProvisioner(store, &countingHasher{}, "cambridge.edu.in")

	fees, name, year := dec(1200), "  Jane Roe ", 4
	acc, err := prov.UpdateStudent(ctx, student.ID, StudentUpdate{TotalFees: &fees, Name: &name, Year: &year})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	assertDecimal(t, "totalFees", acc.TotalFees, 1200)
	if acc.Name != "Jane Roe" {
		t.Errorf("name: got %q", acc.Name)
	}
	if acc.Year == nil || *acc.Year != 4 {
		t.Errorf("year: got %v", acc.Year)
	}
	if acc.Semester == nil || *acc.Semester != 5 {
		t.Errorf("semester should be untouched: got %v", acc.Semester)
	}

	badYear, badSem, negative := 0, 9, dec(-1)
	subCent := decimal.RequireFromString("1500.001")
	for name, in := range map[string]StudentUpdate{
		"empty":    {},
		"year 0":   {Year: &badYear},
		"semester": {Semester: &badSem},
		"negative": {TotalFees: &negative},
		"sub-cent": {TotalFees: &subCent},
	} {
		if _, err := prov.UpdateStudent(ctx, student.ID, in); err == nil {
			t.Errorf("%s: expected validation error", name)
		} else {
			assertKind(t, err, ErrValidation)
		}
	}

	_, err = prov.UpdateStudent(ctx, uuid.New(), StudentUpdate{TotalFees: &fees})
	assertKind(t, err, ErrNotFound)

	admin := seedAdmin(t, store)
	_, err = prov.UpdateStudent(ctx, admin.ID, StudentUpdate{TotalFees: &fees})
	assertKind(t, err, ErrNotFound)
}

func TestDeleteStudentCascades(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	keep := seedStudent(t, store, "1CR21CS108", 1000)
	gone := seedStudent(t, store, "1CR21CS109", 1000)
	seedPayment(t, store, keep.ID, 100, feeModel.PaymentStatusSuccess)
	seedPayment(t, store, gone.ID, 200, feeModel.PaymentStatusSuccess)
	seedPayment(t, store, gone.ID, 300, feeModel.PaymentStatusFailed)

	prov := NewProvisioner(store, &countingHasher{}, "cambridge.edu.in")
	removed, err := prov.DeleteStudent(ctx, gone.ID)
	if err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed: got %d, want 2", removed)
	}

	if left, _ := store.FindPaymentsByStudent(ctx, gone.ID); len(left) != 0 {
		t.Errorf("payments survived delete: %d", len(left))
	}
	if left, _ := store.FindPaymentsByStudent(ctx, keep.ID); len(left) != 1 {
		t.Errorf("other student's payments touched: %d", len(left))
	}
	_, err = NewBalanceReader(store).StudentBalance(ctx, gone.ID)
	assertKind(t, err, ErrNotFound)

	_, err = prov.DeleteStudent(ctx, gone.ID)
	assertKind(t, err, ErrNotFound)
}
