package usecase

import (
	"context"
	"errors"
	"testing"

	"bricsbtc/internal/domain"
	"bricsbtc/internal/repository"
)

func newInvestFixture() (*InvestService, *fakeUserRepo, *fakePackageRepo, *fakeTransactionRepo, *fakeNotificationRepo) {
	users := newFakeUserRepo()
	packages := newFakePackageRepo()
	transactions := &fakeTransactionRepo{}
	notifications := &fakeNotificationRepo{}
	svc := NewInvestService(packages, users, transactions, notifications)
	return svc, users, packages, transactions, notifications
}

func TestPurchaseDeductsPrincipal(t *testing.T) {
	svc, users, packages, transactions, _ := newInvestFixture()
	user := addUser(users, 1000)

	pkg, err := svc.Purchase(context.Background(), user.ID, "Starter", 400, 1.5, 30)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if user.Balance != 600 {
		t.Errorf("Balance = %v, want 600", user.Balance)
	}
	if pkg.Status != domain.PackageActive {
		t.Errorf("Status = %q, want %q", pkg.Status, domain.PackageActive)
	}
	if _, ok := packages.packages[pkg.ID]; !ok {
		t.Error("package not persisted")
	}
	if len(transactions.transactions) != 1 || transactions.transactions[0].Amount != -400 {
		t.Errorf("expected one ledger entry of -400, got %+v", transactions.transactions)
	}
}

func TestPurchaseRejectsOverdraft(t *testing.T) {
	svc, users, packages, _, _ := newInvestFixture()
	user := addUser(users, 100)

	if _, err := svc.Purchase(context.Background(), user.ID, "Starter", 400, 1.5, 30); !errors.Is(err, repository.ErrInsufficientBalance) {
		t.Errorf("err = %v, want ErrInsufficientBalance", err)
	}
	if user.Balance != 100 {
		t.Errorf("Balance = %v, want 100", user.Balance)
	}
	if len(packages.packages) != 0 {
		t.Error("no package should exist after a failed purchase")
	}
}

func TestAccrueDailyCreditsROI(t *testing.T) {
	svc, users, _, _, _ := newInvestFixture()
	user := addUser(users, 1000)

	pkg, err := svc.Purchase(context.Background(), user.ID, "Starter", 400, 2, 30)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if err := svc.AccrueDaily(context.Background()); err != nil {
		t.Fatalf("AccrueDaily: %v", err)
	}

	// 2% of 400 = 8 credited on top of the remaining 600
	if user.Balance != 608 {
		t.Errorf("Balance = %v, want 608", user.Balance)
	}
	if pkg.AccruedDays != 1 {
		t.Errorf("AccruedDays = %d, want 1", pkg.AccruedDays)
	}
	if pkg.Status != domain.PackageActive {
		t.Errorf("Status = %q, want %q", pkg.Status, domain.PackageActive)
	}
}

func TestAccrueDailyMaturesAtTerm(t *testing.T) {
	svc, users, packages, _, notifications := newInvestFixture()
	user := addUser(users, 1000)

	pkg, err := svc.Purchase(context.Background(), user.ID, "Short", 100, 5, 2)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	packages.packages[pkg.ID].AccruedDays = 1

	if err := svc.AccrueDaily(context.Background()); err != nil {
		t.Fatalf("AccrueDaily: %v", err)
	}

	if pkg.Status != domain.PackageMatured {
		t.Errorf("Status = %q, want %q", pkg.Status, domain.PackageMatured)
	}

	// The fake only returns ACTIVE packages as accruable, so a matured
	// package earns nothing further
	balance := user.Balance
	if err := svc.AccrueDaily(context.Background()); err != nil {
		t.Fatalf("AccrueDaily: %v", err)
	}
	if user.Balance != balance {
		t.Errorf("matured package still accruing: %v -> %v", balance, user.Balance)
	}

	got, _ := notifications.GetByUser(context.Background(), user.ID)
	if len(got) != 1 {
		t.Errorf("notifications = %d, want 1 maturity notice", len(got))
	}
}

func TestDeleteWithRefund(t *testing.T) {
	svc, users, packages, _, _ := newInvestFixture()
	user := addUser(users, 500)

	pkg, err := svc.Purchase(context.Background(), user.ID, "Starter", 300, 1, 10)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if err := svc.Delete(context.Background(), pkg.ID, true); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if user.Balance != 500 {
		t.Errorf("Balance = %v, want 500 after refund", user.Balance)
	}
	if len(packages.packages) != 0 {
		t.Error("package should be removed")
	}
}

func TestDeleteWithoutRefund(t *testing.T) {
	svc, users, packages, _, _ := newInvestFixture()
	user := addUser(users, 500)

	pkg, err := svc.Purchase(context.Background(), user.ID, "Starter", 300, 1, 10)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if err := svc.Delete(context.Background(), pkg.ID, false); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if user.Balance != 200 {
		t.Errorf("Balance = %v, want 200 without refund", user.Balance)
	}
	if len(packages.packages) != 0 {
		t.Error("package should be removed")
	}
}
