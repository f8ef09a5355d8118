// token emite un JWT de desarrollo firmado con JWT_SECRET para probar la API localmente.
//
// Uso: go run ./cmd/token -user <id> -role planner|warehouse|admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/ppic-api/pkg/config"
	"github.com/jhoicas/ppic-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "dev-user", "identificador del usuario (claim user_id)")
	role := flag.String("role", jwt.RolePlanner, "rol: planner, warehouse o admin")
	flag.Parse()

	switch *role {
	case jwt.RolePlanner, jwt.RoleWarehouse, jwt.RoleAdmin:
	default:
		fmt.Fprintf(os.Stderr, "Rol desconocido: %s\n", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
