package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vingd/broker"
)

func (a *App) printObject(o broker.Object) {
	fmt.Fprintf(a.out, "%d\t%s\t%s\n", o.ID, o.Description.Name, o.Description.URL)
}

func (a *App) Objects(ctx context.Context, _ []string) error {
	objects, err := a.broker.GetObjects(ctx)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		fmt.Fprintln(a.out, "No objects")
		return nil
	}
	for _, o := range objects {
		a.printObject(o)
	}
	return nil
}

func (a *App) Object(ctx context.Context, args []string) error {
	oid, err := a.intArg(args, 0, "Enter object id")
	if err != nil {
		return err
	}
	o, err := a.broker.GetObject(ctx, oid)
	if err != nil {
		return err
	}
	a.printObject(*o)
	return nil
}

func (a *App) describeObject(args []string, from int) (broker.ObjectDescription, error) {
	name, err := a.argOrPrompt(args, from, "Enter object name")
	if err != nil {
		return broker.ObjectDescription{}, err
	}
	url, err := a.argOrPrompt(args, from+1, "Enter object URL")
	if err != nil {
		return broker.ObjectDescription{}, err
	}
	return broker.ObjectDescription{Name: name, URL: url}, nil
}

func (a *App) CreateObject(ctx context.Context, args []string) error {
	desc, err := a.describeObject(args, 0)
	if err != nil {
		return err
	}
	oid, err := a.broker.CreateObject(ctx, desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Object %d registered\n", oid)
	return nil
}

func (a *App) UpdateObject(ctx context.Context, args []string) error {
	oid, err := a.intArg(args, 0, "Enter object id")
	if err != nil {
		return err
	}
	desc, err := a.describeObject(args, 1)
	if err != nil {
		return err
	}
	updated, err := a.broker.UpdateObject(ctx, oid, desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Object %d updated\n", updated)
	return nil
}
